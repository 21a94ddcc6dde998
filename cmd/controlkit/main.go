package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-controlkit/internal/config"
	"github.com/goliatone/go-controlkit/internal/logging"
	"github.com/goliatone/go-controlkit/pkg/prompt"
	"github.com/goliatone/go-controlkit/pkg/source"
)

const usage = `usage: controlkit [flags] <command> [args]

commands:
  describe <manifest>               print a summary of a control manifest
  validate <manifest> <params>      check a JSON parameter file against a manifest
  params <manifest>                 prompt for input parameters and print them as JSON
  diff <prev> <next>                report whether a snapshot change needs a re-render
  serve [flags] <manifest>          serve enum options for a manifest over HTTP

flags:
`

var errUsage = errors.New("usage")

type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger logr.Logger
	driver prompt.Driver
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("controlkit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	logLevel := fs.String("log-level", "", "log level: info, debug, trace (overrides config)")
	logFormat := fs.String("log-format", "", "log format: text or json (overrides config)")
	allowHTTP := fs.Bool("allow-http", false, "allow http(s) manifest and snapshot locations")
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	if *allowHTTP {
		cfg.Loader.AllowHTTP = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	a.cfg = cfg
	a.logger = logging.Setup(cfg.Logging.Level, cfg.Logging.Format, a.stderr).WithName("controlkit")

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	command, cmdArgs := rest[0], rest[1:]
	switch command {
	case "describe":
		err = a.describe(ctx, cmdArgs)
	case "validate":
		err = a.validate(ctx, cmdArgs)
	case "params":
		err = a.params(ctx, cmdArgs)
	case "diff":
		err = a.diff(ctx, cmdArgs)
	case "serve":
		err = a.serve(ctx, cmdArgs)
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n", command)
		fs.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.stderr, "%v\n", err)
		return 2
	default:
		a.logger.Error(err, "command failed", "command", command)
		fmt.Fprintf(a.stderr, "controlkit %s: %v\n", command, err)
		return 1
	}
}

func parseSource(raw string) (source.Source, error) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return nil, errors.New("empty location")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return source.FromURL(location)
	}
	return source.FromFile(location), nil
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}
