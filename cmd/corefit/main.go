// Command corefit fits polynomials to every channel of a temperature log.
//
// Usage:
//
//	corefit [flags] <data-file> [interpolation|least-squares]
//
// One equation file per channel is written to the output directory. Settings
// come from the built-in defaults, then -config, then COREFIT_* environment
// variables, then flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuminosukeSato/corefit/config"
	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/pkg/log"
	"github.com/YuminosukeSato/corefit/runner"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "corefit: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("corefit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: corefit [flags] <data-file> [interpolation|least-squares]\n\n")
		fs.PrintDefaults()
	}

	def := config.Default()
	var (
		configPath = fs.String("config", "", "YAML configuration file")
		method     = fs.String("method", def.Method, "fitting method: interpolation or least-squares")
		degree     = fs.Int("degree", def.Degree, "least-squares polynomial degree")
		sampleRate = fs.Float64("sample-rate", def.SampleRate, "seconds between samples")
		outputDir  = fs.String("output-dir", def.OutputDir, "directory for equation files")
		strict     = fs.Bool("strict", def.Strict, "fail on singular systems instead of writing NaN/Inf")
		tolerance  = fs.Float64("tolerance", def.Tolerance, "pivot magnitude treated as zero with -strict")
		pivoting   = fs.String("pivoting", def.Pivoting, "pivot selection: raw or magnitude")
		plotFormat = fs.String("plot", def.PlotFormat, "also plot each channel in this format (png, svg, pdf)")
		logLevel   = fs.String("log-level", def.LogLevel, "log level: debug, info, warn, error")
		workers    = fs.Int("workers", def.Workers, "channels fitted at once, 0 for one per CPU")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return errors.New("expected a data file and an optional method")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if fs.NArg() == 2 {
		cfg.Method = fs.Arg(1)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "method":
			cfg.Method = *method
		case "degree":
			cfg.Degree = *degree
		case "sample-rate":
			cfg.SampleRate = *sampleRate
		case "output-dir":
			cfg.OutputDir = *outputDir
		case "strict":
			cfg.Strict = *strict
		case "tolerance":
			cfg.Tolerance = *tolerance
		case "pivoting":
			cfg.Pivoting = *pivoting
		case "plot":
			cfg.PlotFormat = *plotFormat
		case "log-level":
			cfg.LogLevel = *logLevel
		case "workers":
			cfg.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := log.SetupLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, cfg, fs.Arg(0), logger)
	for _, f := range summary.Files {
		fmt.Fprintln(stdout, f)
	}
	for _, f := range summary.Plots {
		fmt.Fprintln(stdout, f)
	}
	return err
}
