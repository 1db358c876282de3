// Command ls-orrery is a terminal orrery: the sun, planets and moons animated
// through a scene graph of orbit pivots.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/celestial"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

// headlessOptions are the CLI flags for headless mode.
type headlessOptions struct {
	summary       bool
	at            float64
	snapshotPath  string
	watchInterval time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run does the work of main and returns the exit code, so deferred cleanup
// runs before the process exits.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ls-orrery", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts headlessOptions
	configPath := fs.String("config", "orrery.toml", "Config file (TOML); missing is fine")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (text, json)")
	logFile := fs.String("log-file", "", "Write logs to file (TUI logs are discarded otherwise)")
	fps := fs.Int("fps", 0, "Frames per second")
	speed := fs.Float64("speed", 0, "Speed multiplier (0-2)")
	bodies := fs.String("bodies", "", "Body table file (.toml, .yaml)")
	follow := fs.String("follow", "", "Body to follow at start")
	stats := fs.Bool("stats", false, "Show frame statistics")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.BoolVar(&opts.summary, "summary", false, "Print text summary instead of TUI")
	fs.Float64Var(&opts.at, "at", 0, "Elapsed seconds for headless output")
	fs.StringVar(&opts.snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	fs.DurationVar(&opts.watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 2s)")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	if *showVersion {
		fmt.Fprintf(stdout, "ls-orrery v%s\n", version.Version)
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfig
	}

	// Flags override the file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		case "log-file":
			cfg.Log.File = *logFile
		case "fps":
			cfg.Render.FPS = *fps
		case "speed":
			cfg.Speed.Multiplier = *speed
		case "bodies":
			cfg.Bodies.Path = *bodies
		case "follow":
			cfg.Render.Follow = *follow
		case "stats":
			cfg.Render.Stats = *stats
		}
	})
	cfg.Normalize()

	headless := opts.summary || opts.snapshotPath != ""
	if !headless && !isTerminal(stdout) {
		// Piped output gets the summary instead of an alt screen
		opts.summary, headless = true, true
	}

	// Set up logging. The TUI owns the terminal, so its logs go to a file.
	logOut := stderr
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error: open log file: %v\n", err)
			return exitConfig
		}
		defer f.Close()
		logOut = f
	} else if !headless {
		logOut = io.Discard
	}
	logger := logging.NewWithFormat(logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format), logOut)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	stateMgr, err := newManager(cfg, logger)
	if err != nil {
		logger.Error("%v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfig
	}

	if headless {
		if err := runHeadless(ctx, stateMgr, opts, stdout, logger); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	// Create TUI model
	model := ui.New(stateMgr, ui.Options{
		FPS:           cfg.Render.FPS,
		FrameInterval: cfg.FrameInterval(),
		ShowStats:     cfg.Render.Stats,
		Logger:        logger.With("ui"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("starting TUI at %d fps with %d bodies", cfg.Render.FPS, len(stateMgr.BodyNames()))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return exitError
	}
	return exitOK
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newManager builds the body table and the scene around it. Table problems
// come back as a *celestial.ConfigurationError.
func newManager(cfg config.Config, logger *logging.Logger) (*state.Manager, error) {
	stateCfg := state.DefaultConfig()
	stateCfg.Speed = cfg.AnimSpeed()
	stateCfg.Lights = cfg.Lights

	if cfg.Bodies.Path != "" {
		table, err := celestial.LoadTable(cfg.Bodies.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded %d bodies from %s", table.Len(), cfg.Bodies.Path)
		stateCfg.Table = table
	}

	mgr, err := state.NewManager(stateCfg)
	if err != nil {
		return nil, err
	}

	if cfg.Render.Follow != "" {
		if err := mgr.Follow(cfg.Render.Follow); err != nil {
			logger.Warn("%v", err)
		}
	}
	return mgr, nil
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, opts headlessOptions, out io.Writer, logger *logging.Logger) error {
	start := time.Now()

	outputOnce := func(elapsed float64) error {
		stateMgr.Tick(elapsed)
		snap := stateMgr.Snapshot()
		logger.Debug("frame at t=%.2fs", elapsed)

		// Export JSON if requested
		if opts.snapshotPath != "" {
			export := state.ExportSnapshot(snap, time.Now().UTC())
			if opts.snapshotPath == "-" {
				if err := export.WriteJSON(out); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(opts.snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if opts.summary {
			state.WriteSummaryTable(out, snap)
			if pos, ok := stateMgr.FollowPosition(); ok {
				fmt.Fprintf(out, "Following %s at (%.2f, %.2f, %.2f)\n", snap.Follow, pos.X, pos.Y, pos.Z)
			}
		}
		return nil
	}

	// Single run
	if opts.watchInterval == 0 {
		return outputOnce(opts.at)
	}

	// Watch mode: repeat at interval, animating from --at in real time
	if err := outputOnce(opts.at); err != nil {
		logger.Error("%v", err)
	}

	ticker := time.NewTicker(opts.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprintln(out) // Blank line between outputs
			if err := outputOnce(opts.at + time.Since(start).Seconds()); err != nil {
				logger.Error("%v", err)
			}
		}
	}
}
