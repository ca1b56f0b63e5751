package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/valerio/gbdebug/gbdebug"
	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/backend/headless"
	"github.com/valerio/gbdebug/gbdebug/backend/sdl2"
	"github.com/valerio/gbdebug/gbdebug/backend/terminal"
	"github.com/valerio/gbdebug/gbdebug/config"
	"github.com/valerio/gbdebug/gbdebug/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbdebug"
	app.Description = "Game Boy debugger panels driven by a demo machine"
	app.Usage = "gbdebug [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend",
			Usage: "Rendering backend: terminal, headless or sdl2",
			Value: "terminal",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to the TOML configuration file",
			Value: config.DefaultFilename,
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 = until exit)",
			Value: -1,
		},
		cli.StringFlag{
			Name:  "trace",
			Usage: "Write every headless frame as a JSON line to this file",
		},
		cli.IntFlag{
			Name:  "speed",
			Usage: "Initial speed index, 0 (1/8x) to 6 (8x)",
			Value: -1,
		},
		cli.BoolFlag{
			Name:  "run",
			Usage: "Start with execution running",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runDebugger

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running debugger", "error", err)
		os.Exit(1)
	}
}

func runDebugger(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(afero.NewOsFs(), c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("frames") {
		cfg.Headless.Frames = c.Int("frames")
	}
	if c.IsSet("trace") {
		cfg.Headless.Trace = c.String("trace")
	}
	if c.IsSet("speed") {
		cfg.Control.SpeedIndex = c.Int("speed")
	}
	if c.Bool("run") {
		cfg.Control.StartRunning = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	b, limiter, cleanup, err := newBackend(c.String("backend"), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	d := gbdebug.NewWithConfig(b, cfg.BackendConfig())
	d.SetRunning(cfg.Control.StartRunning)
	d.SetSpeedIndex(cfg.Control.SpeedIndex)
	for name, visible := range cfg.PanelVisibility() {
		d.SetPanelVisible(name, visible)
	}

	if err := d.Open(); err != nil {
		return err
	}

	frames := loop(d, newMachine(), limiter)
	slog.Info("Debugger exited", "frames", frames)

	return d.Close()
}

// newBackend builds the named backend and the limiter pacing it. The
// returned cleanup releases anything created alongside the backend.
func newBackend(name string, cfg config.Config) (backend.Backend, timing.Limiter, func(), error) {
	switch name {
	case "terminal":
		limiter := timing.NewTickerLimiter()
		return terminal.New(), limiter, limiter.Stop, nil
	case "sdl2":
		return sdl2.New(), timing.NewNoOpLimiter(), func() {}, nil
	case "headless":
		h := headless.New(cfg.Headless.Frames)
		h.SetViewport(cfg.Headless.Viewport)
		if cfg.Headless.Trace == "" {
			return h, timing.NewNoOpLimiter(), func() {}, nil
		}

		f, err := os.Create(cfg.Headless.Trace)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		h.SetTrace(f)
		cleanup := func() {
			if err := f.Close(); err != nil {
				slog.Error("Failed to close trace file", "error", err)
			}
		}
		return h, timing.NewNoOpLimiter(), cleanup, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", name)
	}
}
