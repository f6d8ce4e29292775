package polyfit

import (
	"github.com/YuminosukeSato/corefit/pkg/log"
)

// settings holds the configuration shared by LeastSquares and Interpolator
type settings struct {
	degree    int
	strict    bool
	tolerance float64
	pivoting  PivotPolicy
	logger    log.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		degree: 1,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) solveOptions() []SolveOption {
	opts := []SolveOption{WithPivoting(s.pivoting)}
	if s.strict {
		opts = append(opts, WithSingularCheck(s.tolerance))
	}
	return opts
}

// Option is a function that configures an estimator
type Option func(*settings)

// WithDegree sets the polynomial degree for least squares. Interpolator
// always fits degree 1 and ignores it.
func WithDegree(degree int) Option {
	return func(s *settings) {
		s.degree = degree
	}
}

// WithStrict makes singular systems fail with an error instead of producing
// non-finite coefficients. Pivots with magnitude at most tol count as zero.
func WithStrict(tol float64) Option {
	return func(s *settings) {
		s.strict = true
		s.tolerance = tol
	}
}

// WithPivotPolicy sets the pivot selection policy used by the solver
func WithPivotPolicy(p PivotPolicy) Option {
	return func(s *settings) {
		s.pivoting = p
	}
}

// WithLogger sets the logger used for debug output during Fit
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
