package polyfit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/corefit/pkg/errors"
)

// PivotPolicy decides which row becomes the pivot row at each elimination step.
type PivotPolicy int

const (
	// PivotRaw picks the row holding the strictly largest raw value in the
	// pivot column. A large negative entry is never preferred over a smaller
	// positive or zero one. Ties keep the current row.
	PivotRaw PivotPolicy = iota
	// PivotMagnitude picks the row with the largest absolute value, the
	// textbook partial pivoting rule.
	PivotMagnitude
)

// String returns the policy name used in configuration files.
func (p PivotPolicy) String() string {
	if p == PivotMagnitude {
		return "magnitude"
	}
	return "raw"
}

// ParsePivotPolicy converts "raw" or "magnitude" to a PivotPolicy.
func ParsePivotPolicy(s string) (PivotPolicy, error) {
	switch s {
	case "raw", "":
		return PivotRaw, nil
	case "magnitude":
		return PivotMagnitude, nil
	default:
		return PivotRaw, errors.NewValidationError("pivoting", "must be raw or magnitude", s)
	}
}

func (p PivotPolicy) prefers(current, candidate float64) bool {
	if p == PivotMagnitude {
		return math.Abs(current) < math.Abs(candidate)
	}
	return current < candidate
}

type solveConfig struct {
	pivoting  PivotPolicy
	strict    bool
	tolerance float64
}

// SolveOption configures Solve.
type SolveOption func(*solveConfig)

// WithPivoting sets the pivot selection policy. The default is PivotRaw.
func WithPivoting(p PivotPolicy) SolveOption {
	return func(c *solveConfig) {
		c.pivoting = p
	}
}

// WithSingularCheck turns on strict mode: a pivot whose magnitude is at most
// tol aborts the solve with a SingularSystemError, non-finite inputs are
// rejected up front and a non-finite result is reported as a
// NumericalInstabilityError. A negative tol is treated as zero.
func WithSingularCheck(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.strict = true
		c.tolerance = math.Max(tol, 0)
	}
}

// Solve solves a·x = b by Gaussian elimination with partial pivoting and
// returns x.
//
// Solve works in place. It takes exclusive use of a and b for the duration
// of the call: on return a has been reduced to the identity and b holds the
// solution. The returned vector is b itself, not a copy. a and b must not
// share storage, and Solve must not run concurrently on the same buffers.
//
// Shape problems are reported before anything is modified. By default a
// singular system is not detected: a zero pivot divides by zero and the
// resulting Inf and NaN values propagate into the returned vector without
// an error. Use WithSingularCheck to fail fast instead; in that case a and b
// may be left partially reduced when the error is returned.
func Solve(a *mat.Dense, b *mat.VecDense, opts ...SolveOption) (*mat.VecDense, error) {
	const op = "polyfit.Solve"

	var cfg solveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if a == nil || b == nil || a.IsEmpty() || b.IsEmpty() {
		return nil, errors.NewModelError(op, "empty system", errors.ErrEmptyData)
	}
	n, c := a.Dims()
	if n != c {
		return nil, errors.NewDimensionError(op, n, c, 1)
	}
	if b.Len() != n {
		return nil, errors.NewDimensionError(op, n, b.Len(), 0)
	}
	if cfg.strict {
		if err := errors.CheckMatrix(op, a, n, n, 0); err != nil {
			return nil, err
		}
		if err := errors.CheckMatrix(op, b, n, 1, 0); err != nil {
			return nil, err
		}
	}

	for i := 0; i < n; i++ {
		if p := selectPivot(a, i, cfg.pivoting); p != i {
			swapRows(a, b, i, p)
		}

		pivot := a.At(i, i)
		if cfg.strict && (math.Abs(pivot) <= cfg.tolerance || math.IsNaN(pivot)) {
			return nil, errors.NewSingularSystemError(op, i, pivot)
		}

		// Scale the pivot row so the diagonal becomes 1
		row := a.RawRowView(i)
		for k := range row {
			row[k] /= pivot
		}
		b.SetVec(i, b.AtVec(i)/pivot)

		// Zero column i below the pivot
		for r := i + 1; r < n; r++ {
			s := a.At(r, i)
			floats.AddScaled(a.RawRowView(r), -s, row)
			b.SetVec(r, b.AtVec(r)-s*b.AtVec(i))
		}
	}

	backSubstitute(a, b)

	if cfg.strict {
		if err := errors.CheckNumericalStability(op, mat.Col(nil, 0, b), n); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// selectPivot returns the row in i..n-1 that should hold the pivot for column i.
func selectPivot(a *mat.Dense, i int, policy PivotPolicy) int {
	n, _ := a.Dims()
	best := i
	for j := i + 1; j < n; j++ {
		if policy.prefers(a.At(best, i), a.At(j, i)) {
			best = j
		}
	}
	return best
}

func swapRows(a *mat.Dense, b *mat.VecDense, i, j int) {
	ri, rj := a.RawRowView(i), a.RawRowView(j)
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
	bi, bj := b.AtVec(i), b.AtVec(j)
	b.SetVec(i, bj)
	b.SetVec(j, bi)
}

// backSubstitute clears the strict upper triangle of a unit upper-triangular
// a column by column from the right, applying the same row operations to b.
func backSubstitute(a *mat.Dense, b *mat.VecDense) {
	n, _ := a.Dims()
	for i := n - 1; i >= 1; i-- {
		for j := i - 1; j >= 0; j-- {
			s := a.At(j, i)
			a.Set(j, i, a.At(j, i)-s*a.At(i, i))
			b.SetVec(j, b.AtVec(j)-s*b.AtVec(i))
		}
	}
}
