// Package cli implements the jott command line. Run is the whole program;
// cmd/jott only forwards os.Args and exits with its result.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/logger"
	"github.com/funvibe/jott/internal/utils"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usageText = `Usage: jott [flags] <command> [arguments]

Commands:
  run <file.jott>      validate then execute (default when a file is given)
  check <file.jott>    validate only
  fmt <file.jott>      print the program in canonical form
  repl                 start an interactive session
  history [-n N]       list recent runs

Flags:
  --config <path>      config file (default: jott.yaml found from the working directory up)
  --log-level <level>  debug, info, warn, error or none
  --log-file <path>    write logs to a file instead of stderr
  --log-format <fmt>   text or json
  --color <mode>       auto, always or never
  --max-depth <n>      maximum nested function calls
  --history            record runs in the history database
  --history-db <path>  history database location
  --version            print the version and exit
  --help               show this help
`

type options struct {
	configPath string
	logLevel   string
	logFile    string
	logFormat  string
	color      string
	maxDepth   int
	history    bool
	historyDB  string
	version    bool
}

type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// Run executes the jott command line and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("JOTT_DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(stderr, "Internal error: %v\n", r)
			fmt.Fprintln(stderr, "This is a bug. Please report it.")
			code = exitFailure
		}
	}()

	fs := flag.NewFlagSet("jott", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usageText) }

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "config file")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level")
	fs.StringVar(&opts.logFile, "log-file", "", "log file")
	fs.StringVar(&opts.logFormat, "log-format", "", "log format")
	fs.StringVar(&opts.color, "color", "", "diagnostic colouring")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "maximum call depth")
	fs.BoolVar(&opts.history, "history", false, "record run history")
	fs.StringVar(&opts.historyDB, "history-db", "", "history database")
	fs.BoolVar(&opts.version, "version", false, "print version")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "jott %s\n", config.Version)
		return exitOK
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := resolveConfig(fs, &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}
	closeLog, err := setupLogging(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}
	defer closeLog()

	a := &app{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		color:  utils.ColorEnabled(cfg.Color, stderr),
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "run":
		return a.runFile(cmdArgs, true)
	case "check":
		return a.runFile(cmdArgs, false)
	case "fmt":
		return a.format(cmdArgs)
	case "repl":
		return a.repl()
	case "history":
		return a.history(cmdArgs)
	case "help":
		fs.Usage()
		return exitOK
	}
	if utils.IsSourceFile(cmd) {
		return a.runFile(rest, true)
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
	fs.Usage()
	return exitUsage
}

// resolveConfig loads jott.yaml (explicit, or found from the working
// directory up) and applies the flags that were set on the command line.
func resolveConfig(fs *flag.FlagSet, opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var overrideErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = opts.logLevel
		case "log-file":
			cfg.LogFile = opts.logFile
		case "log-format":
			cfg.LogFormat = opts.logFormat
		case "color":
			switch opts.color {
			case config.ColorAuto, config.ColorAlways, config.ColorNever:
				cfg.Color = opts.color
			default:
				overrideErr = fmt.Errorf("--color: must be auto, always or never, got %q", opts.color)
			}
		case "max-depth":
			if opts.maxDepth <= 0 || opts.maxDepth > config.MaxCallDepthLimit {
				overrideErr = fmt.Errorf("--max-depth: must be between 1 and %d, got %d",
					config.MaxCallDepthLimit, opts.maxDepth)
			}
			cfg.MaxCallDepth = opts.maxDepth
		case "history":
			cfg.History.Enabled = opts.history
		case "history-db":
			cfg.History.Path = opts.historyDB
			cfg.History.Enabled = true
		}
	})
	return cfg, overrideErr
}

func setupLogging(cfg *config.Config, stderr io.Writer) (func(), error) {
	w := stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	if _, err := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: w}); err != nil {
		closeFn()
		return nil, err
	}
	return closeFn, nil
}
