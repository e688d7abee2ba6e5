package inspect

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/plus3/carnot/ecs"
)

// FrameHistory keeps the last N frame times in a ring buffer.
type FrameHistory struct {
	frames []time.Duration
	index  int
	filled int
}

func NewFrameHistory(historyFrames int) *FrameHistory {
	return &FrameHistory{frames: make([]time.Duration, historyFrames)}
}

// Record adds one frame time.
func (h *FrameHistory) Record(dt time.Duration) {
	if len(h.frames) == 0 {
		return
	}
	h.frames[h.index] = dt
	h.index = (h.index + 1) % len(h.frames)
	if h.filled < len(h.frames) {
		h.filled++
	}
}

// Average returns the mean of the recorded frame times.
func (h *FrameHistory) Average() time.Duration {
	if h.filled == 0 {
		return 0
	}
	var total time.Duration
	for _, ft := range h.frames[:h.filled] {
		total += ft
	}
	return total / time.Duration(h.filled)
}

// FPS returns the frame rate implied by Average.
func (h *FrameHistory) FPS() float64 {
	avg := h.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// WriteStats renders world, scheduler and frame statistics. Any argument may be nil.
func WriteStats(out io.Writer, world *ecs.WorldStats, scheduler *ecs.SchedulerStats, history *FrameHistory) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if world != nil {
		fmt.Fprintf(tw, "World %s\n", world.WorldID)
		fmt.Fprintf(tw, "Total Entities: %d\n", world.EntityCount)
		fmt.Fprintf(tw, "Resources: %d\n", world.ResourceCount)
		if len(world.Components) > 0 {
			fmt.Fprintln(tw, "COMPONENT\tSLOTS\tOCCUPIED")
			for _, c := range world.Components {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Type, c.Len, c.Occupied)
			}
		}
		if len(world.ResourceTypes) > 0 {
			names := make([]string, len(world.ResourceTypes))
			for i, t := range world.ResourceTypes {
				names[i] = t.String()
			}
			fmt.Fprintf(tw, "Resource Types: %s\n", strings.Join(names, ", "))
		}
	}

	if history != nil {
		fmt.Fprintf(tw, "Avg Frame Time: %.2f ms (%.0f FPS)\n",
			float64(history.Average())/float64(time.Millisecond), history.FPS())
	}

	if scheduler != nil {
		fmt.Fprintf(tw, "Frames: %d\n", scheduler.Frames)
		fmt.Fprintln(tw, "SYSTEM\tSTAGE\tRUNS\tAVG\tMAX")
		for _, sys := range scheduler.Systems {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				sys.Name, sys.Stage, sys.ExecutionCount, sys.AvgDuration, sys.MaxDuration)
		}
	}

	return tw.Flush()
}
