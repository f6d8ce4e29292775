package polyfit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/corefit/pkg/errors"
)

// BuildDesignMatrices returns the design matrix X and target vector Y for
// fitting a polynomial of the given degree through points.
//
// Row i of X is [x_i^0, x_i^1, ..., x_i^degree], so column 0 is all ones.
// Y[i] is y_i. Powers are built by repeated multiplication.
//
// The point count is not checked against the degree: fewer than degree+1
// points give a singular normal matrix, which Solve reports (or not)
// according to its options.
func BuildDesignMatrices(points []Point, degree int) (*mat.Dense, *mat.VecDense, error) {
	const op = "polyfit.BuildDesignMatrices"

	if degree < 0 {
		return nil, nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	if len(points) == 0 {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	x := mat.NewDense(len(points), degree+1, nil)
	y := mat.NewVecDense(len(points), nil)
	for i, p := range points {
		row := x.RawRowView(i)
		v := 1.0
		for j := range row {
			row[j] = v
			v *= p.X
		}
		y.SetVec(i, p.Y)
	}
	return x, y, nil
}

// NormalEquations returns freshly allocated XᵗX and XᵗY.
func NormalEquations(x *mat.Dense, y *mat.VecDense) (xtx *mat.Dense, xty *mat.VecDense, err error) {
	const op = "polyfit.NormalEquations"
	defer errors.Recover(&err, op)

	if x == nil || y == nil || x.IsEmpty() || y.IsEmpty() {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	r, c := x.Dims()
	if y.Len() != r {
		return nil, nil, errors.NewDimensionError(op, r, y.Len(), 0)
	}

	xtx = mat.NewDense(c, c, nil)
	xtx.Mul(x.T(), x)

	xty = mat.NewVecDense(c, nil)
	xty.MulVec(x.T(), y)

	return xtx, xty, nil
}
