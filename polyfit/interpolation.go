package polyfit

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/corefit/core/model"
	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/pkg/log"
)

// Interpolator fits a straight line between every pair of consecutive points.
//
// Each segment solves the 2×2 system X·c = Y built from its two endpoints
// directly; no normal equations are formed.
type Interpolator struct {
	model.BaseEstimator
	settings

	segments []Polynomial
}

// NewInterpolator returns an unfitted piecewise linear interpolator.
func NewInterpolator(opts ...Option) *Interpolator {
	return &Interpolator{settings: newSettings(opts)}
}

// Fit computes one segment per consecutive pair of points. Points should be
// ordered by non-decreasing X.
func (ip *Interpolator) Fit(points []Point) error {
	const op = "Interpolator.Fit"
	ip.Reset()
	start := time.Now()

	if len(points) < 2 {
		return errors.NewMalformedInputError(op, len(points), 1)
	}

	segments := make([]Polynomial, 0, len(points)-1)
	solveOpts := ip.solveOptions()
	for i := 1; i < len(points); i++ {
		pair := points[i-1 : i+1]

		x, y, err := BuildDesignMatrices(pair, 1)
		if err != nil {
			return err
		}
		solution, err := Solve(x, y, solveOpts...)
		if err != nil {
			return errors.NewModelError(op, fmt.Sprintf("segment %d", i-1), err)
		}

		segments = append(segments, Polynomial{
			Coefficients: mat.Col(nil, 0, solution),
			XMin:         pair[0].X,
			XMax:         pair[1].X,
			Method:       MethodInterpolation,
		})
	}
	ip.segments = segments

	ip.logger.Debug("interpolation fit complete",
		log.ModelNameKey, "Interpolator",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(points),
		log.SegmentsKey, len(segments),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	ip.SetFitted()
	return nil
}

// Segments returns a copy of the fitted segments in point order.
func (ip *Interpolator) Segments() ([]Polynomial, error) {
	if err := ip.RequireFitted("Interpolator", "Segments"); err != nil {
		return nil, err
	}
	out := make([]Polynomial, len(ip.segments))
	for i, s := range ip.segments {
		s.Coefficients = append([]float64(nil), s.Coefficients...)
		out[i] = s
	}
	return out, nil
}

// Polynomials implements Fitter.
func (ip *Interpolator) Polynomials() ([]Polynomial, error) {
	return ip.Segments()
}

// Predict evaluates the segment whose range [XMin, XMax) contains x. The
// right end of the last segment is included.
func (ip *Interpolator) Predict(x float64) (float64, error) {
	if err := ip.RequireFitted("Interpolator", "Predict"); err != nil {
		return 0, err
	}

	// First segment ending after x; zero-width segments are skipped
	i := sort.Search(len(ip.segments), func(i int) bool {
		return ip.segments[i].XMax > x
	})
	if i < len(ip.segments) && ip.segments[i].XMin <= x {
		return ip.segments[i].Eval(x), nil
	}

	last := ip.segments[len(ip.segments)-1]
	if x == last.XMax {
		return last.Eval(x), nil
	}
	return 0, errors.NewValueError("Interpolator.Predict",
		fmt.Sprintf("x=%g is outside the fitted range [%g, %g]", x, ip.segments[0].XMin, last.XMax))
}

// FitPiecewiseLinear returns the interpolation segments for points.
func FitPiecewiseLinear(points []Point, opts ...Option) ([]Polynomial, error) {
	ip := NewInterpolator(opts...)
	if err := ip.Fit(points); err != nil {
		return nil, err
	}
	return ip.Segments()
}
