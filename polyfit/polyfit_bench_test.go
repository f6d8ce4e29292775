package polyfit

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkPoints はベンチマーク用の点列を生成する
func createBenchmarkPoints(n int) []Point {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	points := make([]Point, n)
	for i := range points {
		// 30Hzのサンプリングを模した等間隔のx
		x := float64(i) / 30
		points[i] = Point{X: x, Y: 40 + 0.5*x - 0.01*x*x + (rng.Float64()-0.5)*2}
	}
	return points
}

// BenchmarkLeastSquaresFit は次数と点数を変えてFitを測定する
func BenchmarkLeastSquaresFit(b *testing.B) {
	sizes := []struct {
		name   string
		points int
		degree int
	}{
		{"Deg1_100", 100, 1},
		{"Deg1_10000", 10000, 1},
		{"Deg2_10000", 10000, 2},
		{"Deg3_10000", 10000, 3},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			points := createBenchmarkPoints(size.points)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ls := NewLeastSquares(WithDegree(size.degree))
				if err := ls.Fit(points); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkInterpolatorFit は区間ごとの2×2求解を測定する
func BenchmarkInterpolatorFit(b *testing.B) {
	points := createBenchmarkPoints(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ip := NewInterpolator()
		if err := ip.Fit(points); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSolve は消去法のみを測定する（コピーは計測外）
func BenchmarkSolve(b *testing.B) {
	for _, n := range []int{2, 4, 8} {
		x, y, err := BuildDesignMatrices(createBenchmarkPoints(1000), n-1)
		if err != nil {
			b.Fatal(err)
		}
		xtx, xty, err := NormalEquations(x, y)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("%dx%d", n, n), func(b *testing.B) {
			a := mat.NewDense(n, n, nil)
			v := mat.NewVecDense(n, nil)
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				a.Copy(xtx)
				v.CopyVec(xty)
				b.StartTimer()
				if _, err := Solve(a, v); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
