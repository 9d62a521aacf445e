// Package main is the entry point for the caretkit terminal editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/caretkit/internal/app"
	"github.com/dshills/caretkit/internal/config"
	"github.com/dshills/caretkit/internal/logging"
	"github.com/dshills/caretkit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	opts       app.Options
	dumpConfig bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	if f.dumpConfig {
		return dumpConfig(f.opts.ConfigPath)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(term, f.opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = application.Run(ctx)
	term.Shutdown()
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// dumpConfig prints the effective settings in the settings file's format.
func dumpConfig(path string) int {
	cfg := config.Default()
	format := config.FormatTOML
	if path != "" {
		var err error
		if format, err = config.FormatFor(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		loaded, err := config.Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, config.ErrFileNotFound):
			// Defaults.
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	data, err := config.Encode(format, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.opts.ConfigPath, "config", "", "Path to settings file (.toml, .yaml or .json)")
	flag.StringVar(&f.opts.ConfigPath, "c", "", "Path to settings file (shorthand)")
	flag.BoolVar(&f.dumpConfig, "dump-config", false, "Print the effective settings and exit")
	flag.StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the settings file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "caretkit - terminal editor with auto-closing pairs and go-to-line\n\n")
		fmt.Fprintf(os.Stderr, "Usage: caretkit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+G   go to line[:column]\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S   save\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Z   undo (Ctrl+Y redo)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q   quit\n")
		fmt.Fprintf(os.Stderr, "\nAn init.lua next to the settings file is run at startup and on reload.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("caretkit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(f.opts.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.opts.LogLevel)
			os.Exit(1)
		}
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(1)
	}
	f.opts.File = flag.Arg(0)

	if f.opts.ConfigPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			f.opts.ConfigPath = p
		}
	}

	return f
}
