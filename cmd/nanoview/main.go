// Package main is the entry point for the nanoview file viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/nanoview/internal/app"
	"github.com/dshills/nanoview/internal/config"
	"github.com/dshills/nanoview/internal/document"
	"github.com/dshills/nanoview/internal/renderer/backend"
	"github.com/dshills/nanoview/internal/renderer/highlight"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

// highlightCacheSize bounds the number of highlighted lines kept.
const highlightCacheSize = 4096

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	file       string
	configPath string
	logFile    string
	overrides  config.Overrides

	showVersion bool
	showHelp    bool
	listThemes  bool
}

// errUsage marks command line mistakes; the message has already been
// printed by the flag set.
var errUsage = errors.New("usage error")

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	var theme, logLevel string
	var lineNumbers bool

	fs := flag.NewFlagSet("nanoview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.file, "file", "", "Path to the file to view")
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&theme, "theme", "", "Syntax highlighting theme")
	fs.BoolVar(&lineNumbers, "line-numbers", false, "Show line numbers")
	fs.StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.listThemes, "list-themes", false, "List available themes and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "nanoview - terminal file viewer\n\n")
		fmt.Fprintf(stderr, "Usage: nanoview [options] <file>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys:\n")
		fmt.Fprintf(stderr, "  arrows          Move the cursor\n")
		fmt.Fprintf(stderr, "  q, Ctrl-C       Quit\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// Usage was already printed.
			opts.showHelp = true
			return opts, nil
		}
		return opts, errUsage
	}
	if opts.showHelp {
		fs.Usage()
		return opts, nil
	}
	if opts.showVersion || opts.listThemes {
		return opts, nil
	}

	// Only flags given on the command line override other layers.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			opts.overrides.Theme = &theme
		case "line-numbers":
			opts.overrides.LineNumbers = &lineNumbers
		case "log-level":
			opts.overrides.LogLevel = &logLevel
		}
	})

	rest := fs.Args()
	switch {
	case opts.file != "" && len(rest) > 0:
		fmt.Fprintf(stderr, "Error: give the file either with --file or as an argument, not both\n")
		fs.Usage()
		return opts, errUsage
	case opts.file == "" && len(rest) == 0:
		fmt.Fprintf(stderr, "Error: no file given\n")
		fs.Usage()
		return opts, errUsage
	case len(rest) > 1:
		fmt.Fprintf(stderr, "Error: only one file can be viewed at a time\n")
		fs.Usage()
		return opts, errUsage
	case len(rest) == 1:
		opts.file = rest[0]
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return exitUsage
	}
	if opts.showHelp {
		return exitOK
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "nanoview %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}
	if opts.listThemes {
		for _, name := range highlight.Themes() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	}

	// Startup failures are reported before the terminal is touched.
	settings, err := config.Load(config.LoadOptions{
		Path:      opts.configPath,
		Overrides: opts.overrides,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	chroma := highlight.NewChroma()
	if err := app.CheckTheme(chroma, settings); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	rendererOpts, err := app.RendererOptions(settings, version)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	doc, err := document.Load(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	logger, closeLog, err := openLogger(opts.logFile, settings.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer closeLog()
	if settings.Source != "" {
		logger.Debug("settings from %s", settings.Source)
	}

	if err := app.CheckTerminal(os.Stdin.Fd(), os.Stdout.Fd()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", &app.TerminalError{Op: "open", Err: err})
		return exitFailure
	}

	cache := highlight.NewCache(chroma, highlightCacheSize)
	session := app.NewSession(term, doc, app.Options{
		Renderer:    rendererOpts,
		Highlighter: cache,
		Logger:      logger,
	})

	stop := forwardSignals(term)
	err = session.Run()
	stop()

	hits, misses := cache.Stats()
	logger.Debug("highlight cache: %d hits, %d misses, %d lines held", hits, misses, cache.Len())

	// The terminal is restored by now; buffered logs can go to stderr.
	closeLog()

	var perr *app.RecoveredPanicError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrInterrupted):
		return exitInterrupted
	case errors.As(err, &perr):
		fmt.Fprintf(stderr, "Error: %s\n", perr.Summary())
		return exitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

// openLogger builds the session logger. With a log file, records are
// appended to it; otherwise they are held until the returned close
// function flushes them to stderr. close is safe to call twice.
func openLogger(path, level string, stderr io.Writer) (*app.Logger, func(), error) {
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(level)

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		cfg.Output = f
		closed := false
		return app.NewSessionLogger(cfg), func() {
			if !closed {
				closed = true
				_ = f.Close()
			}
		}, nil
	}

	deferred := &app.DeferredWriter{}
	cfg.Output = deferred
	return app.NewSessionLogger(cfg), func() {
		_ = deferred.Flush(stderr)
	}, nil
}

// forwardSignals turns SIGINT and SIGTERM into interrupt events on b so
// the session loop ends through its normal release path. The returned
// function stops forwarding.
func forwardSignals(b backend.Backend) func() {
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		for {
			select {
			case sig := <-signals:
				_ = b.PostEvent(backend.InterruptEvent(sig))
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
