// Command orrery is an interactive 3D solar-system orrery for the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep"
	"golang.org/x/term"

	"github.com/levinmathewabraham/orrery/internal/camera"
	"github.com/levinmathewabraham/orrery/internal/clock"
	"github.com/levinmathewabraham/orrery/internal/config"
	"github.com/levinmathewabraham/orrery/internal/logging"
	"github.com/levinmathewabraham/orrery/internal/metrics"
	"github.com/levinmathewabraham/orrery/internal/narration"
	"github.com/levinmathewabraham/orrery/internal/pick"
	"github.com/levinmathewabraham/orrery/internal/scene"
	"github.com/levinmathewabraham/orrery/internal/state"
	"github.com/levinmathewabraham/orrery/internal/ui"
	"github.com/levinmathewabraham/orrery/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	frameMode    bool
	pickAt       string
	viewSize     string
	headlessTick int
)

const (
	defaultWidth  = 120
	defaultHeight = 40
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file while the TUI runs")
	seed := flag.Int64("seed", 0, "Random seed for asteroids and stars (0 = config or time)")
	fps := flag.Int("fps", 0, "Frames per second (overrides render.frame_interval)")
	noAudio := flag.Bool("no-audio", false, "Disable the audio device; narration is muted")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	assetRoot := flag.String("assets", ".", "Directory that texture and narration paths are relative to")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print a body table instead of the TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&frameMode, "frame", false, "Print one rendered frame as plain text")
	flag.StringVar(&pickAt, "pick", "", "Report the body under cell X,Y (headless)")
	flag.StringVar(&viewSize, "size", fmt.Sprintf("%dx%d", defaultWidth, defaultHeight), "Viewport WxH for --frame and --pick")
	flag.IntVar(&headlessTick, "ticks", 0, "Advance the clock this many ticks before headless output")
	flag.Parse()

	if *showVersion {
		fmt.Printf("orrery v%s\n", version.Version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if cfg.Scene.Seed == 0 {
		cfg.Scene.Seed = time.Now().UnixNano()
	}
	if *fps > 0 {
		cfg.Render.FrameInterval = time.Second / time.Duration(*fps)
		cfg.Normalize()
	}
	if *noAudio {
		cfg.Audio.Enabled = false
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	system, err := scene.BuildSolarSystem(cfg.Scene, rand.New(rand.NewSource(cfg.Scene.Seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	clk, err := clock.FromSolarSystem(system, cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Headless mode: no TUI
	headless := summaryMode || snapshotPath != "" || frameMode || pickAt != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; printing a summary (see --help for headless modes)")
		summaryMode, headless = true, true
	}
	if headless {
		logger := logging.New(logging.ParseLevel(*logLevel))
		if err := runHeadless(os.Stdout, cfg, system, clk, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Set up logging; the TUI owns the terminal.
	logger := logging.Discard()
	if *logFile != "" {
		l, closer, err := logging.OpenFile(*logFile, logging.ParseLevel(*logLevel))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer closer.Close()
		logger = l
	}
	logger.Info("orrery v%s starting, seed %d", version.Version, cfg.Scene.Seed)

	collector := metrics.NewCollector()
	if *metricsAddr != "" {
		go func() {
			logger.Info("metrics on %s", *metricsAddr)
			if err := collector.Serve(ctx, *metricsAddr); err != nil {
				logger.Error("metrics server: %v", err)
			}
		}()
	}

	voice := narration.NewController(openSink(cfg.Audio, logger), cfg.Audio.Volume)
	defer voice.Close()

	model := ui.New(ui.Deps{
		System:    system,
		Clock:     clk,
		Camera:    camera.New(cfg.Camera),
		Narration: voice,
		State:     state.NewManager(state.DefaultConfig()),
		Metrics:   collector,
		Logger:    logger,
		Config:    *cfg,
		AssetRoot: *assetRoot,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	logger.Info("orrery stopped after %d ticks", clk.Ticks())
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return config.Load(path)
}

// openSink opens the audio device, falling back to a mixer that is not
// connected to any device when audio is off or unavailable.
func openSink(cfg config.AudioConfig, logger *logging.Logger) narration.Sink {
	rate := beep.SampleRate(cfg.SampleRate)
	if !cfg.Enabled {
		return narration.NewMixerSink(rate)
	}
	sink, err := narration.NewSpeakerSink(rate)
	if err != nil {
		logger.Warn("audio device unavailable, narration muted: %v", err)
		return narration.NewMixerSink(rate)
	}
	return sink
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(w io.Writer, cfg *config.Config, system *scene.SolarSystem, clk *clock.Clock, logger *logging.Logger) error {
	for i := 0; i < headlessTick; i++ {
		clk.Tick()
	}
	logger.Debug("advanced %d ticks, phase %.4f", clk.Ticks(), clk.Phase())

	width, height, err := parseSize(viewSize)
	if err != nil {
		return err
	}
	cam := camera.New(cfg.Camera)
	cam.SetViewport(width, height, cfg.Render.CellAspect)

	// Export JSON if requested
	if snapshotPath != "" {
		export := scene.ExportSnapshot(system.Registry, clk.Ticks(), time.Now().UTC())
		if snapshotPath == "-" {
			if err := export.WriteJSON(w); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
			logger.Info("snapshot written to %s", snapshotPath)
		}
	}

	// Print summary table if requested
	if summaryMode {
		scene.WriteSummaryTable(w, system.Registry.All(), clk.Ticks())
	}

	if frameMode {
		fmt.Fprintln(w, ui.RenderText(system, cam, width, height, cfg.Render.ShowOrbits, cfg.Render.ShowStars))
	}

	if pickAt != "" {
		x, y, err := parsePoint(pickAt)
		if err != nil {
			return err
		}
		vp := pick.Viewport{Width: width, Height: height}
		if !vp.Contains(x, y) {
			return fmt.Errorf("pick %d,%d outside %dx%d viewport", x, y, width, height)
		}
		if hit, ok := pick.Pick(system.Registry, cam, vp, x, y); ok {
			fmt.Fprintf(w, "%d,%d: %s (%s) at distance %.2f\n", x, y, hit.Body.Name, hit.Body.Kind, hit.T)
		} else {
			fmt.Fprintf(w, "%d,%d: nothing\n", x, y)
		}
	}
	return nil
}

// parseSize parses "WxH".
func parseSize(s string) (width, height int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH): %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

// parsePoint parses "X,Y".
func parsePoint(s string) (x, y int, err error) {
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q (want X,Y): %w", s, err)
	}
	return x, y, nil
}
