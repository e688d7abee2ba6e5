package ecs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

type scheduledSystem struct {
	system System
	name   string
	stage  Stage
	params []Param
	stats  systemStatsInternal
}

// Scheduler runs systems stage by stage against one World. Execution is strictly
// sequential: a system runs to completion, with its parameters released, before
// the next one starts.
type Scheduler struct {
	world    *World
	stages   [stageCount][]*scheduledSystem
	commands *Commands
	frame    *UpdateFrame
	logger   *zap.Logger

	startupRan int
	frames     uint64
	elapsed    time.Duration
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for lifecycle events and system failures.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world:    world,
		commands: NewCommands(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.frame = newUpdateFrame(world, s.commands)
	return s
}

// World returns the world the scheduler runs against.
func (s *Scheduler) World() *World {
	return s.world
}

// Frames returns the number of frames run by Once.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// AddSystem appends a system to a stage. Struct systems have their Param fields
// discovered here and resolved on every run.
func (s *Scheduler) AddSystem(stage Stage, system System) {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("ecs: unknown stage %d", stage))
	}
	s.stages[stage] = append(s.stages[stage], &scheduledSystem{
		system: system,
		name:   systemName(system),
		stage:  stage,
		params: structParams(system),
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	})
}

// Register adds a system to the Update stage.
func (s *Scheduler) Register(system System) {
	s.AddSystem(Update, system)
}

// RunStartup runs every Startup system that has not run yet, in registration
// order, then flushes commands. Each startup system runs exactly once.
func (s *Scheduler) RunStartup() error {
	pending := s.stages[Startup][s.startupRan:]
	if len(pending) == 0 {
		return nil
	}
	s.frame.Stage = Startup
	s.frame.DeltaTime = 0
	for _, sys := range pending {
		s.startupRan++
		if err := s.runSystem(sys); err != nil {
			return err
		}
	}
	if err := s.flush(Startup); err != nil {
		return err
	}
	s.logger.Info("startup systems complete",
		zap.Int("systems", len(pending)),
		zap.Stringer("world", s.world.ID()))
	return nil
}

// Once runs pending startup systems, then every frame stage once with the given
// delta time. If a system panics the rest of the frame is abandoned and the
// failure is returned as *SystemError.
func (s *Scheduler) Once(dt time.Duration) error {
	if err := s.RunStartup(); err != nil {
		return err
	}

	s.frames++
	s.elapsed += dt
	AddResource(s.world, Time{Delta: dt, Elapsed: s.elapsed, Frame: s.frames})

	s.frame.DeltaTime = dt.Seconds()
	s.frame.Frame = s.frames
	for _, stage := range FrameStages {
		s.frame.Stage = stage
		for _, sys := range s.stages[stage] {
			if err := s.runSystem(sys); err != nil {
				return err
			}
		}
		if err := s.flush(stage); err != nil {
			return err
		}
	}
	return nil
}

// Run executes frames at the given interval until the context is cancelled or a
// system fails. Cancellation is not an error.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// runSystem resolves the system's params, executes it and records its duration.
// A panic is converted into a *SystemError and pending commands are dropped.
func (s *Scheduler) runSystem(sys *scheduledSystem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.commands.Reset()
			err = &SystemError{System: sys.name, Stage: sys.stage, Frame: s.frames, Cause: r}
			s.logger.Error("system failed",
				zap.String("system", sys.name),
				zap.Stringer("stage", sys.stage),
				zap.Uint64("frame", s.frames),
				zap.Any("cause", r))
		}
	}()

	start := time.Now()
	if len(sys.params) > 0 {
		resolveParams(&paramContext{world: s.world, frame: s.frame}, sys.params...)
		defer releaseParams(sys.params)
	}
	sys.system.Execute(s.frame)
	sys.stats.record(time.Since(start))
	return nil
}

// flushSystemName names the command flush in a *SystemError.
const flushSystemName = "ecs.Commands.Flush"

// flush applies the stage's queued commands. Failed operations are logged; a
// panicking command abandons the frame like a panicking system.
func (s *Scheduler) flush(stage Stage) (err error) {
	if s.commands.Len() == 0 {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &SystemError{System: flushSystemName, Stage: stage, Frame: s.frames, Cause: r}
			s.logger.Error("system failed",
				zap.String("system", flushSystemName),
				zap.Stringer("stage", stage),
				zap.Uint64("frame", s.frames),
				zap.Any("cause", r))
		}
	}()
	if flushErr := s.commands.Flush(s.world); flushErr != nil {
		s.logger.Warn("commands flush failed",
			zap.Stringer("stage", stage),
			zap.Uint64("frame", s.frames),
			zap.Error(flushErr))
	}
	return nil
}

// GetStats returns statistics about system execution, in stage then registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{Frames: s.frames}

	for _, systems := range s.stages {
		for _, sys := range systems {
			internal := sys.stats
			avgDuration := time.Duration(0)
			minDuration := internal.minDuration
			if internal.executionCount > 0 {
				avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			} else {
				minDuration = 0
			}

			stats.Systems = append(stats.Systems, SystemStats{
				Name:           sys.name,
				Stage:          sys.stage,
				ExecutionCount: internal.executionCount,
				MinDuration:    minDuration,
				MaxDuration:    internal.maxDuration,
				AvgDuration:    avgDuration,
				LastDuration:   internal.lastDuration,
				TotalDuration:  internal.totalDuration,
			})
			stats.TotalExecutions += internal.executionCount
		}
	}

	stats.SystemCount = len(stats.Systems)
	return stats
}
