// Package corefit fits low-degree polynomials to periodic temperature
// readings, one series per CPU core.
//
// Two fitting strategies are available: piecewise linear interpolation
// between consecutive samples, and a single least-squares polynomial over all
// samples. Both are solved with Gaussian elimination and partial pivoting.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/corefit/polyfit"
//	)
//
//	func main() {
//	    points := []polyfit.Point{{X: 0, Y: 61}, {X: 30, Y: 80}, {X: 60, Y: 70}}
//
//	    p, err := polyfit.FitLeastSquares(points, 1)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(p.Coefficients)
//	}
//
// From the command line:
//
//	corefit -output-dir out/ temps.txt least-squares
//
// # Packages
//
//   - polyfit: design matrices, the elimination solver and the estimators
//   - readings: multi-channel temperature log parsing (UTF-8 / UTF-16)
//   - report: equation line formatting
//   - plotting: sample and fit plots (gonum/plot)
//   - config: defaults, YAML file and COREFIT_* environment settings
//   - runner: the per-file pipeline used by cmd/corefit
//   - core/model: estimator fitted-state bookkeeping
//   - core/parallel: splitting independent work across goroutines
//   - pkg/errors, pkg/log: error types and structured logging
//
// # Error Handling
//
// Errors carry stack traces (cockroachdb/errors) and typed details:
//
//	_, err := polyfit.FitLeastSquares(points, 1, polyfit.WithStrict(1e-12))
//	var singErr *errors.SingularSystemError
//	if errors.As(err, &singErr) {
//	    fmt.Println("zero pivot at", singErr.Index)
//	}
package corefit
