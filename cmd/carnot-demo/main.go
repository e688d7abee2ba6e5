package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/controls"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/ecs/inspect"
	"github.com/plus3/carnot/input"
	"github.com/plus3/carnot/platform/ebiten"
	"github.com/plus3/carnot/render"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	headless := flag.Bool("headless", false, "Run without a window, recording frames in memory.")
	frames := flag.Uint64("frames", 0, "Stop after this many frames (overrides app.max_frames).")
	dump := flag.Bool("inspect", false, "Print the world after the run.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *frames > 0 {
		cfg.App.MaxFrames = *frames
	}
	if *headless && cfg.App.MaxFrames == 0 {
		cfg.App.MaxFrames = 120
	}

	logger, err := app.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a := app.New(cfg, app.WithLogger(logger))
	history := inspect.NewFrameHistory(120)

	if *headless {
		recorder := render.NewRecorder(1)
		a.AddPlugin(input.Plugin{}).AddPlugin(render.Plugin{Renderer: recorder})
		build(a, history)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := a.Run(ctx); err != nil {
			return err
		}
		if last, ok := recorder.Last(); ok {
			logger.Info("last frame", zap.Uint64("frame", last.Number), zap.Int("draws", len(last.Draws)))
		}
	} else {
		game := ebiten.NewGame(a)
		build(a, history)
		if err := game.Run(); err != nil {
			return err
		}
	}

	if *dump {
		return writeInspection(os.Stdout, a, history)
	}
	return nil
}

// build adds everything that does not depend on the platform.
func build(a *app.App, history *inspect.FrameHistory) {
	a.AddPlugin(controls.Plugin{}).AddPlugin(scenePlugin{})
	a.AddSystem(ecs.PostUpdate, ecs.Named("frameHistory", ecs.Func1(func(clock *ecs.Res[ecs.Time]) {
		history.Record(clock.Get().Delta)
	})))
}

func writeInspection(out io.Writer, a *app.App, history *inspect.FrameHistory) error {
	w := a.World()
	if err := inspect.NewBrowser(0).Write(out, w); err != nil {
		return err
	}
	for i := 0; i < w.NumEntities(); i++ {
		fmt.Fprintln(out)
		if err := inspect.WriteEntity(out, w, ecs.EntityId(i)); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	return inspect.WriteStats(out, w.CollectStats(), a.Scheduler().GetStats(), history)
}
