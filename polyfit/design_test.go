package polyfit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/corefit/pkg/errors"
)

func TestBuildDesignMatrices(t *testing.T) {
	points := []Point{{0, 7}, {1, -1}, {-2, 3.5}, {0.5, 0}, {3, 12}}

	for _, degree := range []int{0, 1, 2, 3} {
		t.Run(string(rune('0'+degree)), func(t *testing.T) {
			x, y, err := BuildDesignMatrices(points, degree)
			require.NoError(t, err)

			r, c := x.Dims()
			require.Equal(t, len(points), r)
			require.Equal(t, degree+1, c)
			require.Equal(t, len(points), y.Len())

			for i, p := range points {
				for j := 0; j <= degree; j++ {
					assert.Equal(t, math.Pow(p.X, float64(j)), x.At(i, j), "X[%d][%d]", i, j)
				}
				assert.Equal(t, p.Y, y.AtVec(i), "Y[%d]", i)
			}
		})
	}
}

func TestBuildDesignMatricesDegreeZeroIsOnes(t *testing.T) {
	points := []Point{{-5, 1}, {0, 2}, {1e6, 3}, {0.25, 4}}

	x, _, err := BuildDesignMatrices(points, 0)
	require.NoError(t, err)

	_, c := x.Dims()
	require.Equal(t, 1, c)
	for i := range points {
		assert.Equal(t, 1.0, x.At(i, 0))
	}
}

func TestBuildDesignMatricesFirstColumnIsOnes(t *testing.T) {
	x, _, err := BuildDesignMatrices([]Point{{0, 0}, {-3, 1}, {9, 2}}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, mat.Col(nil, 0, x))
}

func TestBuildDesignMatricesErrors(t *testing.T) {
	_, _, err := BuildDesignMatrices([]Point{{0, 0}}, -1)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr), "negative degree should be a ValidationError, got %v", err)

	_, _, err = BuildDesignMatrices(nil, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData), "empty points should wrap ErrEmptyData, got %v", err)
}

func TestBuildDesignMatricesDoesNotCheckPointCount(t *testing.T) {
	// 1点で2次: 検証はしない
	x, y, err := BuildDesignMatrices([]Point{{2, 5}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4}, x.RawRowView(0))
	assert.Equal(t, 5.0, y.AtVec(0))
}

func TestNormalEquations(t *testing.T) {
	x, y, err := BuildDesignMatrices([]Point{{0, 0}, {2, 4}}, 1)
	require.NoError(t, err)

	xtx, xty, err := NormalEquations(x, y)
	require.NoError(t, err)

	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{2, 2, 2, 4}), xtx), "XᵗX = %v", mat.Formatted(xtx))
	assert.Equal(t, []float64{4, 8}, mat.Col(nil, 0, xty))

	// 入力は変更されない
	assert.Equal(t, []float64{1, 0}, x.RawRowView(0))
	assert.Equal(t, []float64{1, 2}, x.RawRowView(1))
}

func TestNormalEquationsIsSymmetric(t *testing.T) {
	points := []Point{{-1, 2}, {0.5, 1}, {2, 0}, {3, -4}}
	x, y, err := BuildDesignMatrices(points, 3)
	require.NoError(t, err)

	xtx, _, err := NormalEquations(x, y)
	require.NoError(t, err)
	assert.True(t, mat.Equal(xtx, xtx.T()))
}

func TestNormalEquationsErrors(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{1, 0, 1, 1, 1, 2})
	y := mat.NewVecDense(2, []float64{1, 2})

	_, _, err := NormalEquations(x, y)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr), "got %v", err)
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Got)

	_, _, err = NormalEquations(nil, y)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
