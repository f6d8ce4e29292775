package polyfit

import (
	"math"

	"github.com/YuminosukeSato/corefit/pkg/errors"
)

// Point is one sample of a time series.
type Point struct {
	X float64
	Y float64
}

// Method names a fitting strategy. The value is also the label written at
// the end of every report line.
type Method string

const (
	// MethodInterpolation fits a line through every pair of consecutive samples.
	MethodInterpolation Method = "interpolation"
	// MethodLeastSquares fits one polynomial to all samples.
	MethodLeastSquares Method = "least-squares"
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodInterpolation, MethodLeastSquares:
		return m, nil
	default:
		return "", errors.NewValidationError("method", "unrecognized method, want interpolation or least-squares", s)
	}
}

// Polynomial is a fitted polynomial valid on [XMin, XMax).
// Coefficients are ordered from the constant term upward.
type Polynomial struct {
	Coefficients []float64
	XMin         float64
	XMax         float64
	Method       Method
}

// Degree returns the polynomial degree, or -1 when there are no coefficients.
func (p Polynomial) Degree() int {
	return len(p.Coefficients) - 1
}

// Eval evaluates the polynomial at x with Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for k := len(p.Coefficients) - 1; k >= 0; k-- {
		y = y*x + p.Coefficients[k]
	}
	return y
}

// Coefficient returns the weight of x^k, zero past the degree.
func (p Polynomial) Coefficient(k int) float64 {
	if k < 0 || k >= len(p.Coefficients) {
		return 0
	}
	return p.Coefficients[k]
}

// IsFinite reports whether every coefficient is finite. A polynomial fitted
// from a singular system in permissive mode is not.
func (p Polynomial) IsFinite() bool {
	for _, c := range p.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
