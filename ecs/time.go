package ecs

import "time"

// Time is the resource the Scheduler keeps current before each frame.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

// DeltaSeconds returns Delta in seconds.
func (t Time) DeltaSeconds() float64 {
	return t.Delta.Seconds()
}
