// Package app wires a World, its Scheduler and a logger together from a
// config.Config, and drives frames either headless or from a windowing loop.
package app

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/ecs"
	"go.uber.org/zap"
)

// Plugin adds a group of resources and systems to an App.
type Plugin interface {
	Build(a *App)
}

// App owns the world and scheduler for one running application.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	world     *ecs.World
	scheduler *ecs.Scheduler
	plugins   map[reflect.Type]struct{}
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger handed to the scheduler and to plugins.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithWorld runs the app against an existing world.
func WithWorld(world *ecs.World) Option {
	return func(a *App) {
		a.world = world
	}
}

// New creates an app for a copy of cfg. A nil cfg means config.Default. The
// config is used as given; call cfg.Validate first when it did not come from
// config.Load.
func New(cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		cfg:     *cfg,
		logger:  zap.NewNop(),
		plugins: make(map[reflect.Type]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.world == nil {
		a.world = ecs.NewWorld()
	}
	a.scheduler = ecs.NewScheduler(a.world, ecs.WithLogger(a.logger))
	ecs.AddResource(a.world, a.cfg)
	return a
}

// Config returns the configuration the app was created with.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// World returns the app's world.
func (a *App) World() *ecs.World {
	return a.world
}

// Scheduler returns the app's scheduler.
func (a *App) Scheduler() *ecs.Scheduler {
	return a.scheduler
}

// AddPlugin builds p into the app. A plugin type is built at most once.
func (a *App) AddPlugin(p Plugin) *App {
	t := reflect.TypeOf(p)
	if _, ok := a.plugins[t]; ok {
		a.logger.Debug("plugin already added", zap.Stringer("plugin", t))
		return a
	}
	a.plugins[t] = struct{}{}
	p.Build(a)
	a.logger.Debug("plugin added", zap.Stringer("plugin", t))
	return a
}

// AddSystem appends a system to a stage.
func (a *App) AddSystem(stage ecs.Stage, system ecs.System) *App {
	a.scheduler.AddSystem(stage, system)
	return a
}

// AddStartupSystem appends a system that runs once before the first frame.
func (a *App) AddStartupSystem(system ecs.System) *App {
	return a.AddSystem(ecs.Startup, system)
}

// Step runs one frame with the given delta.
func (a *App) Step(dt time.Duration) error {
	return a.scheduler.Once(dt)
}

// Frames returns the number of frames run so far.
func (a *App) Frames() uint64 {
	return a.scheduler.Frames()
}

// Done reports whether the configured frame limit has been reached.
func (a *App) Done() bool {
	return a.cfg.App.MaxFrames > 0 && a.Frames() >= a.cfg.App.MaxFrames
}

// Run steps frames every tick_rate until ctx is cancelled, max_frames is reached
// or a system fails. Only the failure is returned.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.App.TickRate <= 0 {
		return fmt.Errorf("app: tick rate must be positive, got %s", a.cfg.App.TickRate)
	}
	if err := a.scheduler.RunStartup(); err != nil {
		return err
	}

	a.logger.Info("app running",
		zap.String("title", a.cfg.App.Title),
		zap.Duration("tick_rate", a.cfg.App.TickRate),
		zap.Uint64("max_frames", a.cfg.App.MaxFrames))

	ticker := time.NewTicker(a.cfg.App.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for !a.Done() {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := a.Step(dt); err != nil {
				return err
			}
		}
	}
	if ctx.Err() != nil {
		a.logger.Info("app stopped", zap.Uint64("frames", a.Frames()), zap.Error(ctx.Err()))
		return nil
	}
	a.logger.Info("app finished", zap.Uint64("frames", a.Frames()))
	return nil
}
