// Package runner fits every channel of a temperature log and writes the
// resulting equations, one file per channel.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/YuminosukeSato/corefit/config"
	"github.com/YuminosukeSato/corefit/core/parallel"
	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/pkg/log"
	"github.com/YuminosukeSato/corefit/plotting"
	"github.com/YuminosukeSato/corefit/polyfit"
	"github.com/YuminosukeSato/corefit/readings"
	"github.com/YuminosukeSato/corefit/report"
)

// Summary describes what a run produced.
type Summary struct {
	// Channels is the number of channels found in the input.
	Channels int
	// Lines is the total number of equation lines written.
	Lines int
	// Files lists the equation files of the channels that succeeded, in
	// channel order.
	Files []string
	// Plots lists the written plot files, in channel order.
	Plots []string
	// NonFinite counts channels whose fit has non-finite coefficients.
	NonFinite int
}

type channelResult struct {
	file      string
	plot      string
	lines     int
	nonFinite bool
	err       error
}

// Run parses input, fits each channel with the configured method and writes
// <name>-core-<n>.txt into cfg.OutputDir, where <name> is the input file name
// without its .txt suffix.
//
// Channels are fitted concurrently and independently: a failing channel does
// not stop the others. Run returns the summary of the channels that
// succeeded together with the joined channel errors.
func Run(ctx context.Context, cfg config.Config, input string, logger log.Logger) (Summary, error) {
	const op = "runner.Run"
	start := time.Now()

	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	method, err := cfg.FitMethod()
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, errors.Wrap(err, op)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Summary{}, errors.Wrapf(err, "create output directory %q", cfg.OutputDir)
	}

	channels, err := readings.ParseFile(input)
	if err != nil {
		return Summary{}, err
	}
	if channels.Len() == 0 {
		return Summary{}, errors.NewModelError(op, "no readings in "+input, errors.ErrEmptyData)
	}

	runLogger := logger.With(
		log.ComponentKey, "runner",
		log.InputFileKey, input,
		log.MethodKey, string(method),
	)
	runLogger.Debug("readings parsed",
		log.OperationKey, log.OperationParse,
		log.ChannelsKey, channels.Len(),
		log.SamplesKey, channels.Samples(),
	)
	runLogger.Info("fitting channels",
		log.ChannelsKey, channels.Len(),
		log.SampleRateKey, cfg.SampleRate,
		log.PivotingKey, cfg.Pivoting,
		log.StrictKey, cfg.Strict,
	)

	base := strings.TrimSuffix(filepath.Base(input), ".txt")
	results := make([]channelResult, channels.Len())
	parallel.ParallelizeN(channels.Len(), cfg.Workers, func(lo, hi int) {
		for n := lo; n < hi; n++ {
			job := channelJob{
				cfg:    cfg,
				method: method,
				index:  n,
				values: channels[n],
				base:   base,
				logger: runLogger.With(log.ChannelKey, n),
			}
			results[n] = job.run(ctx)
		}
	})

	summary := Summary{Channels: channels.Len()}
	var errs []error
	for n, r := range results {
		if r.err != nil {
			runLogger.Error("channel failed", r.err,
				log.ChannelKey, n,
				log.ErrorCodeKey, log.ErrorCode(r.err),
			)
			errs = append(errs, errors.Wrapf(r.err, "channel %d", n))
			continue
		}
		summary.Lines += r.lines
		summary.Files = append(summary.Files, r.file)
		if r.plot != "" {
			summary.Plots = append(summary.Plots, r.plot)
		}
		if r.nonFinite {
			summary.NonFinite++
		}
	}

	runLogger.Info("run complete",
		log.ChannelsKey, summary.Channels,
		"lines", summary.Lines,
		"failed", len(errs),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return summary, errors.Join(errs...)
}

// channelJob fits and writes one channel.
type channelJob struct {
	cfg    config.Config
	method polyfit.Method
	index  int
	values []float64
	base   string
	logger log.Logger
}

func (j channelJob) run(ctx context.Context) (res channelResult) {
	op := fmt.Sprintf("runner.channel[%d]", j.index)
	res.err = errors.SafeExecute(op, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

		opts, err := j.cfg.FitOptions(j.logger)
		if err != nil {
			return err
		}
		fitter, err := polyfit.NewFitter(j.method, opts...)
		if err != nil {
			return err
		}

		points := readings.Points(j.values, j.cfg.SampleRate)
		if err := fitter.Fit(points); err != nil {
			return err
		}
		polys, err := fitter.Polynomials()
		if err != nil {
			return err
		}

		for _, p := range polys {
			if !p.IsFinite() {
				res.nonFinite = true
				errors.Warn(errors.NewNumericalWarning(op, p.Coefficients))
				break
			}
		}

		res.file = filepath.Join(j.cfg.OutputDir, fmt.Sprintf("%s-core-%d.txt", j.base, j.index))
		res.lines, err = writeEquations(res.file, polys, j.cfg.SampleRate)
		if err != nil {
			return err
		}

		if j.cfg.PlotFormat != "" {
			res.plot = filepath.Join(j.cfg.OutputDir, fmt.Sprintf("%s-core-%d.%s", j.base, j.index, j.cfg.PlotFormat))
			if err := j.plot(points, polys, res.plot); err != nil {
				return err
			}
		}

		j.logger.Info("channel fitted",
			log.OperationKey, log.OperationReport,
			log.SamplesKey, len(points),
			log.SegmentsKey, len(polys),
			log.OutputFileKey, res.file,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
		return nil
	})
	return res
}

func (j channelJob) plot(points []polyfit.Point, polys []polyfit.Polynomial, path string) error {
	title := fmt.Sprintf("%s core %d (%s)", j.base, j.index, j.method)
	p, skipped, err := plotting.Render(points, polys, title)
	if err != nil {
		return err
	}
	if skipped > 0 {
		j.logger.Debug("non-finite fits left out of plot",
			log.OperationKey, log.OperationPlot,
			"skipped", skipped,
		)
	}
	return plotting.Save(p, path)
}

func writeEquations(path string, polys []polyfit.Polynomial, sampleRate float64) (lines int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "create %q", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Combine(err, errors.Wrapf(cerr, "close %q", path))
		}
	}()

	w := report.NewWriter(f, sampleRate)
	if err := w.WriteAll(polys); err != nil {
		return 0, err
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	return w.Lines(), nil
}
