// Package config holds the settings of a corefit run.
//
// Values are layered: Default, then an optional YAML file, then COREFIT_*
// environment variables. The command line applies its flags on top and calls
// Validate last.
package config

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/pkg/log"
	"github.com/YuminosukeSato/corefit/polyfit"
)

// EnvPrefix is prepended to every environment variable name, e.g.
// COREFIT_SAMPLE_RATE.
const EnvPrefix = "COREFIT"

// Config is the full set of run settings.
type Config struct {
	// SampleRate is the time between two samples in seconds.
	SampleRate float64 `yaml:"sample_rate" envconfig:"SAMPLE_RATE"`
	// OutputDir receives one equation file per channel.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	// Method is "interpolation" or "least-squares".
	Method string `yaml:"method" envconfig:"METHOD"`
	// Degree of the least-squares polynomial. Interpolation ignores it.
	Degree int `yaml:"degree" envconfig:"DEGREE"`
	// Strict reports singular systems as errors instead of writing
	// non-finite coefficients.
	Strict bool `yaml:"strict" envconfig:"STRICT"`
	// Tolerance is the pivot magnitude treated as zero in strict mode.
	Tolerance float64 `yaml:"tolerance" envconfig:"TOLERANCE"`
	// Pivoting is "raw" or "magnitude".
	Pivoting string `yaml:"pivoting" envconfig:"PIVOTING"`
	// PlotFormat enables a plot per channel in the given image format
	// (png, svg, pdf, ...). Empty disables plotting.
	PlotFormat string `yaml:"plot_format" envconfig:"PLOT_FORMAT"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	// Workers bounds how many channels are fitted at once; 0 means one per CPU.
	Workers int `yaml:"workers" envconfig:"WORKERS"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SampleRate: 30,
		OutputDir:  "output/",
		Method:     string(polyfit.MethodInterpolation),
		Degree:     1,
		Tolerance:  1e-12,
		Pivoting:   polyfit.PivotRaw.String(),
		LogLevel:   "info",
	}
}

// Load returns Default overlaid with the YAML file at path (skipped when
// path is empty) and then with the environment. The result is not validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "open config %q", path)
		}
		defer f.Close()

		if err := decodeYAML(f, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse config %q", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}
	return cfg, nil
}

// decodeYAML rejects unknown keys so that typos do not pass silently.
func decodeYAML(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

var plotFormats = map[string]bool{
	"": true, "png": true, "svg": true, "pdf": true, "eps": true,
	"jpg": true, "jpeg": true, "tif": true, "tiff": true,
}

// Validate checks every field and returns all problems combined.
func (c Config) Validate() error {
	var errs []error
	add := func(err error) {
		errs = append(errs, err)
	}

	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		add(errors.NewValidationError("sample_rate", "must be a positive number", c.SampleRate))
	}
	if c.OutputDir == "" {
		add(errors.NewValidationError("output_dir", "must not be empty", c.OutputDir))
	}
	if _, err := polyfit.ParseMethod(c.Method); err != nil {
		add(err)
	}
	if c.Degree < 0 {
		add(errors.NewValidationError("degree", "must be non-negative", c.Degree))
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		add(errors.NewValidationError("tolerance", "must be non-negative", c.Tolerance))
	}
	if _, err := polyfit.ParsePivotPolicy(c.Pivoting); err != nil {
		add(err)
	}
	if !plotFormats[c.PlotFormat] {
		add(errors.NewValidationError("plot_format", "unsupported image format", c.PlotFormat))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		add(err)
	}
	if c.Workers < 0 {
		add(errors.NewValidationError("workers", "must be non-negative", c.Workers))
	}
	return errors.Join(errs...)
}

// FitMethod returns the configured fitting method.
func (c Config) FitMethod() (polyfit.Method, error) {
	return polyfit.ParseMethod(c.Method)
}

// FitOptions translates the numeric settings into estimator options.
func (c Config) FitOptions(logger log.Logger) ([]polyfit.Option, error) {
	pivoting, err := polyfit.ParsePivotPolicy(c.Pivoting)
	if err != nil {
		return nil, err
	}
	opts := []polyfit.Option{
		polyfit.WithDegree(c.Degree),
		polyfit.WithPivotPolicy(pivoting),
		polyfit.WithLogger(logger),
	}
	if c.Strict {
		opts = append(opts, polyfit.WithStrict(c.Tolerance))
	}
	return opts, nil
}
