package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ftahirops/ncdadvisor/config"
	"github.com/ftahirops/ncdadvisor/engine"
	"github.com/ftahirops/ncdadvisor/logger"
	"github.com/ftahirops/ncdadvisor/model"
	"github.com/ftahirops/ncdadvisor/ui"
	"github.com/ftahirops/ncdadvisor/web"
	"github.com/joho/godotenv"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// Options holds the parsed command line.
type Options struct {
	Config      config.Config
	WebAddr     string
	JSONMode    bool
	MDMode      bool
	Form        model.FormInput
	Light       bool
	WriteConfig bool
	ShowVersion bool
}

const usage = `ncdadvisor v%s - lifestyle advice for non-communicable disease risk

Usage:
  ncdadvisor [OPTIONS]

Modes:
  (default)         Interactive TUI (bubbletea, fullscreen)
  -web ADDR         Serve the browser page and JSON API on ADDR
  -json             Analyze the -calories/-sleep/-weight/-height values, print JSON, exit
  -md               Same, but print a Markdown report
  -write-config     Save the effective settings to %s and exit
  -version          Print version and exit

Options:
  -calories N       Daily calorie intake
  -sleep N          Sleep hours per night
  -weight N         Weight in kg
  -height N         Height in cm
  -endpoint URL     Analysis service (default: %s)
  -timeout N        Request timeout in seconds (0 = no timeout)
  -light            Start in light mode
  -log FILE         Write logs to FILE (TUI mode logs nowhere otherwise)

Environment:
  NCDADVISOR_ENDPOINT, NCDADVISOR_TIMEOUT_SEC, NCDADVISOR_LOG_FILE, LOG_LEVEL,
  NCDADVISOR_WEB_ADDR (or PORT), NCDADVISOR_ALLOWED_ORIGINS. A .env file in the
  working directory is loaded first.

Examples:
  ncdadvisor
  ncdadvisor -light -log /tmp/ncdadvisor.log
  ncdadvisor -web :8080
  ncdadvisor -json -calories 1800 -sleep 6 -weight 70 -height 175 | jq .bmi
  ncdadvisor -md -calories 1800 -sleep 6 -weight 70 -height 175 > report.md
`

// Run parses flags and starts the application.
func Run() error {
	// A missing .env is normal.
	godotenv.Load()

	opts, err := parseFlags(os.Args[1:], config.Load(), os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return run(opts, os.Stdout, os.Stderr)
}

// parseFlags layers command-line flags over cfg. Flags default to the
// loaded config, so only flags actually given override it.
func parseFlags(args []string, cfg config.Config, stderr io.Writer) (Options, error) {
	opts := Options{Config: cfg}
	fs := flag.NewFlagSet("ncdadvisor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, usage, Version, config.Path(), config.Default().Endpoint)
	}

	fs.StringVar(&opts.WebAddr, "web", "", "Serve the browser page on ADDR")
	fs.BoolVar(&opts.JSONMode, "json", false, "Print a single JSON report and exit")
	fs.BoolVar(&opts.MDMode, "md", false, "Print a single Markdown report and exit")
	fs.StringVar(&opts.Form.Calories, "calories", "", "Daily calorie intake")
	fs.StringVar(&opts.Form.SleepHours, "sleep", "", "Sleep hours per night")
	fs.StringVar(&opts.Form.Weight, "weight", "", "Weight in kg")
	fs.StringVar(&opts.Form.Height, "height", "", "Height in cm")
	fs.StringVar(&opts.Config.Endpoint, "endpoint", cfg.Endpoint, "Analysis service URL")
	fs.IntVar(&opts.Config.TimeoutSec, "timeout", cfg.TimeoutSec, "Request timeout in seconds (0 = none)")
	fs.BoolVar(&opts.Light, "light", !cfg.DarkMode, "Start in light mode")
	fs.StringVar(&opts.Config.LogFile, "log", cfg.LogFile, "Write logs to FILE")
	fs.BoolVar(&opts.WriteConfig, "write-config", false, "Save the effective settings and exit")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if opts.JSONMode && opts.MDMode {
		return opts, errors.New("-json and -md are mutually exclusive")
	}
	if opts.Config.TimeoutSec < 0 {
		return opts, fmt.Errorf("invalid -timeout %d", opts.Config.TimeoutSec)
	}
	opts.Config.DarkMode = !opts.Light
	if opts.WebAddr != "" {
		opts.Config.Web.Addr = opts.WebAddr
	}
	return opts, nil
}

func run(opts Options, stdout, stderr io.Writer) error {
	cfg := opts.Config

	if opts.ShowVersion {
		fmt.Fprintf(stdout, "ncdadvisor v%s\n", Version)
		return nil
	}

	if opts.WriteConfig {
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(stdout, "Config written to %s\n", config.Path())
		return nil
	}

	client := engine.NewClient(cfg.Endpoint, time.Duration(cfg.TimeoutSec)*time.Second)

	switch {
	case opts.WebAddr != "":
		closeLog, err := setupLogging(cfg, stderr)
		if err != nil {
			return err
		}
		defer closeLog()
		return runWeb(client, cfg)
	case opts.JSONMode, opts.MDMode:
		closeLog, err := setupLogging(cfg, stderr)
		if err != nil {
			return err
		}
		defer closeLog()
		return runReport(context.Background(), client, opts.Form, opts.MDMode, stdout)
	}

	return runTUI(client, cfg)
}

// setupLogging sends logs to cfg.LogFile when set, else to stderr.
func setupLogging(cfg config.Config, stderr io.Writer) (func(), error) {
	if cfg.LogFile == "" {
		logger.Setup(stderr, cfg.LogLevel, false)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.Setup(f, cfg.LogLevel, false)
	return func() { f.Close() }, nil
}

func runWeb(client engine.Analyzer, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := web.New(client, cfg.Web.AllowedOrigins)
	return web.Serve(ctx, cfg.Web.Addr, d.Handler())
}

func runTUI(client engine.Analyzer, cfg config.Config) error {
	// Anything written to the terminal would corrupt the screen.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "ncdadvisor")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger.Setup(f, cfg.LogLevel, false)
	} else {
		logger.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uiOpts := ui.OptionsFromConfig(cfg)
	uiOpts.Context = ctx

	p := tea.NewProgram(ui.NewModel(client, uiOpts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
