package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/pkg/log"
	"github.com/YuminosukeSato/corefit/polyfit"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corefit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 30.0, cfg.SampleRate)
	assert.Equal(t, "output/", cfg.OutputDir)
	assert.Equal(t, "interpolation", cfg.Method)
	assert.Equal(t, 1, cfg.Degree)
	assert.Equal(t, "raw", cfg.Pivoting)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
sample_rate: 10
output_dir: results/
method: least-squares
degree: 2
strict: true
pivoting: magnitude
plot_format: svg
workers: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.SampleRate = 10
	want.OutputDir = "results/"
	want.Method = "least-squares"
	want.Degree = 2
	want.Strict = true
	want.Pivoting = "magnitude"
	want.PlotFormat = "svg"
	want.Workers = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "method: least-squares\ndegree: 3\n")
	t.Setenv("COREFIT_DEGREE", "2")
	t.Setenv("COREFIT_SAMPLE_RATE", "0.5")
	t.Setenv("COREFIT_STRICT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "least-squares", cfg.Method, "file value kept when no env var is set")
	assert.Equal(t, 2, cfg.Degree)
	assert.Equal(t, 0.5, cfg.SampleRate)
	assert.True(t, cfg.Strict)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeConfig(t, "sampel_rate: 10\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampel_rate")
	})

	t.Run("bad environment value", func(t *testing.T) {
		t.Setenv("COREFIT_DEGREE", "two")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "\n"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		param  string
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, "sample_rate"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"unknown method", func(c *Config) { c.Method = "spline" }, "method"},
		{"negative degree", func(c *Config) { c.Degree = -1 }, "degree"},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, "tolerance"},
		{"unknown pivoting", func(c *Config) { c.Pivoting = "full" }, "pivoting"},
		{"unknown plot format", func(c *Config) { c.PlotFormat = "gif" }, "plot_format"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.SampleRate = -1
	cfg.Workers = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_rate")
	assert.Contains(t, err.Error(), "workers")
}

func TestFitOptions(t *testing.T) {
	cfg := Default()
	cfg.Method = "least-squares"
	cfg.Strict = true

	method, err := cfg.FitMethod()
	require.NoError(t, err)
	assert.Equal(t, polyfit.MethodLeastSquares, method)

	opts, err := cfg.FitOptions(log.NewNopLogger())
	require.NoError(t, err)

	// 厳密モードが伝わっていれば特異系はエラーになる
	_, err = polyfit.FitLeastSquares([]polyfit.Point{{X: 1, Y: 2}, {X: 1, Y: 2}}, 1, opts...)
	assert.True(t, errors.Is(err, errors.ErrSingularMatrix))

	cfg.Pivoting = "bogus"
	_, err = cfg.FitOptions(log.NewNopLogger())
	assert.Error(t, err)
}
