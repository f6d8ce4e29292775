// Package polyfit fits low-degree polynomials to sampled time series.
//
// Two strategies are provided:
//
//   - Interpolator draws a straight line between every pair of consecutive
//     samples.
//   - LeastSquares fits a single polynomial of a chosen degree to all samples
//     by solving the normal equations XᵗX·c = XᵗY.
//
// Both are built on two lower-level operations that can also be used
// directly. BuildDesignMatrices expands points into the Vandermonde-style
// design matrix X and the target vector Y. Solve reduces a square system with
// Gaussian elimination and partial pivoting, working in place on gonum
// buffers:
//
//	x, y, err := polyfit.BuildDesignMatrices(points, 1)
//	if err != nil {
//	    return err
//	}
//	xtx, xty, err := polyfit.NormalEquations(x, y)
//	if err != nil {
//	    return err
//	}
//	coef, err := polyfit.Solve(xtx, xty) // coef is xty
//
// Coefficients are always ordered from the constant term upward.
//
// # Singular systems
//
// By default Solve does not look for zero pivots; a singular system yields
// Inf or NaN coefficients and no error. WithSingularCheck (or WithStrict on
// the estimators) turns that into a SingularSystemError.
//
// # Pivoting
//
// The default PivotRaw policy compares raw column values, so a large negative
// entry is never chosen as pivot. PivotMagnitude compares absolute values.
package polyfit
