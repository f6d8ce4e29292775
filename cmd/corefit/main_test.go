package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/corefit/pkg/errors"
)

func writeInput(t *testing.T) (dir, input string) {
	t.Helper()
	dir = t.TempDir()
	input = filepath.Join(dir, "temps.txt")
	require.NoError(t, os.WriteFile(input, []byte("61.0 63.0\n80.0 81.0\n70.0 72.5\n"), 0o600))
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })
	return dir, input
}

func TestRunPositionalMethod(t *testing.T) {
	dir, input := writeInput(t)
	out := filepath.Join(dir, "out")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-output-dir", out, "-log-level", "error", input, "least-squares"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	files := strings.Fields(stdout.String())
	require.Len(t, files, 2)
	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(content), "; least-squares\n"), string(content))
}

func TestRunFlagOverridesPositionalMethod(t *testing.T) {
	dir, input := writeInput(t)
	out := filepath.Join(dir, "out")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-output-dir", out, "-method", "interpolation", "-log-level", "error", input, "least-squares"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	content, err := os.ReadFile(filepath.Join(out, "temps-core-1.txt"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "; interpolation\n"))
}

func TestRunConfigFile(t *testing.T) {
	dir, input := writeInput(t)
	out := filepath.Join(dir, "from-config")
	cfgPath := filepath.Join(dir, "corefit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output_dir: "+out+"\nsample_rate: 10\nlog_level: error\n"), 0o600))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, input}, &stdout, &stderr))

	content, err := os.ReadFile(filepath.Join(out, "temps-core-0.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "        0 <= x <        10; y_0 "), string(content))
}

func TestRunUsageErrors(t *testing.T) {
	dir, input := writeInput(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no data file", nil},
		{"too many arguments", []string{input, "interpolation", "extra"}},
		{"unknown method", []string{"-output-dir", dir, input, "spline"}},
		{"bad pivoting", []string{"-output-dir", dir, "-pivoting", "full", input}},
		{"unknown flag", []string{"-frobnicate", input}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(context.Background(), tt.args, &stdout, &stderr))
		})
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &stdout, &stderr)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, stderr.String(), "usage: corefit")
}
