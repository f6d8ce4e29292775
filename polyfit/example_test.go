package polyfit_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/corefit/polyfit"
)

func ExampleSolve() {
	a := mat.NewDense(2, 2, []float64{
		2, 1,
		1, 3,
	})
	b := mat.NewVecDense(2, []float64{3, 5})

	x, err := polyfit.Solve(a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.2f %.2f\n", x.AtVec(0), x.AtVec(1))
	// Output: 0.80 1.40
}

func ExampleFitLeastSquares() {
	points := []polyfit.Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}}

	p, err := polyfit.FitLeastSquares(points, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("y = %.1f + %.1fx on [%g, %g]\n", p.Coefficient(0), p.Coefficient(1), p.XMin, p.XMax)
	// Output: y = 1.0 + 2.0x on [0, 2]
}

func ExampleFitPiecewiseLinear() {
	points := []polyfit.Point{{X: 0, Y: 0}, {X: 30, Y: 15}, {X: 60, Y: 15}}

	segs, err := polyfit.FitPiecewiseLinear(points)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range segs {
		fmt.Printf("[%g, %g): %.2f + %.2fx\n", s.XMin, s.XMax, s.Coefficient(0), s.Coefficient(1))
	}
	// Output:
	// [0, 30): 0.00 + 0.50x
	// [30, 60): 15.00 + 0.00x
}
