package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/ecs/inspect"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	copies := flag.Int("systems", 10, "How many copies of each workload system to register.")
	seed := flag.Uint64("seed", 1, "Seed for the random entity generator.")
	profileMode := flag.String("profile", "", "Write a profile: cpu, mem, allocs or block.")
	profileDir := flag.String("profile-dir", ".", "Directory for profile output.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	if *copies < 1 {
		return errors.New("-systems must be at least 1")
	}

	logger, err := app.NewLogger(config.LoggingConfig{Level: *logLevel, Format: "console"})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if *profileMode != "" {
		option, err := profileOption(*profileMode)
		if err != nil {
			return err
		}
		defer profile.Start(option, profile.ProfilePath(*profileDir), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))

	world := ecs.NewWorld()
	registerComponents(world)
	ecs.AddResource(world, Counters{})
	scheduler := ecs.NewScheduler(world, ecs.WithLogger(logger))
	registerSystems(scheduler, *copies, rng)

	logger.Info("populating world", zap.Int("entities", *entityCount), zap.Stringer("world", world.ID()))
	for i := 0; i < *entityCount; i++ {
		if _, err := world.Spawn(randomComponents(rng)...); err != nil {
			return fmt.Errorf("spawn entity %d: %w", i, err)
		}
	}

	report := &Report{
		Duration:   *duration,
		Entities:   *entityCount,
		Components: len(componentTypes),
		Systems:    len(scheduler.GetStats().Systems),
	}
	history := inspect.NewFrameHistory(240)

	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)

	logger.Info("running simulation", zap.Duration("duration", *duration), zap.Int("systems", report.Systems))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

	for ctx.Err() == nil {
		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		updateStart := time.Now()
		if err := scheduler.Once(deltaTime); err != nil {
			return err
		}
		updateDuration := time.Since(updateStart)

		report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
		history.Record(updateDuration)
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(scheduler.Frames())
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&memEnd)
	report.Memory = memoryUsage(&memStart, &memEnd)

	counters, ok := ecs.GetResource[Counters](world)
	if !ok {
		return errors.New("counters resource missing after run")
	}
	report.Counters = *counters.Get()
	counters.Release()

	report.World = world.CollectStats()
	report.Scheduler = scheduler.GetStats()
	report.History = history

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	return report.Generate(os.Stdout)
}

func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "allocs":
		return profile.MemProfileAllocs, nil
	case "block":
		return profile.BlockProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
}
