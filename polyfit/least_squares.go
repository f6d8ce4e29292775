package polyfit

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/corefit/core/model"
	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/pkg/log"
)

// Fitter は点列から多項式を学習する推定器の共通インターフェース
type Fitter interface {
	// Fit は点列でモデルを学習させる
	Fit(points []Point) error
	// Predict はxにおける値を返す
	Predict(x float64) (float64, error)
	// Polynomials は学習された多項式を定義域の順に返す
	Polynomials() ([]Polynomial, error)
}

// NewFitter はmethodに対応する推定器を作成する
func NewFitter(method Method, opts ...Option) (Fitter, error) {
	switch method {
	case MethodInterpolation:
		return NewInterpolator(opts...), nil
	case MethodLeastSquares:
		return NewLeastSquares(opts...), nil
	default:
		return nil, errors.NewValidationError("method", "unrecognized method", string(method))
	}
}

// LeastSquares は全点に対する最小二乗多項式近似
type LeastSquares struct {
	model.BaseEstimator
	settings

	coefficients []float64 // 係数（定数項から昇順）
	xMin, xMax   float64   // 学習に使った点列の範囲
}

// NewLeastSquares は新しい最小二乗推定器を作成する。既定の次数は1
func NewLeastSquares(opts ...Option) *LeastSquares {
	return &LeastSquares{settings: newSettings(opts)}
}

// Fit はモデルを点列で学習させる
// 正規方程式 (XᵗX)·c = XᵗY をピボット選択付きガウスの消去法で解く
func (ls *LeastSquares) Fit(points []Point) error {
	const op = "LeastSquares.Fit"
	ls.Reset()
	start := time.Now()

	// 入力の検証
	if len(points) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ls.degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", ls.degree)
	}
	// 厳密モードでは点数不足を事前に検出する
	if ls.strict && len(points) < ls.degree+1 {
		return errors.NewMalformedInputError(op, len(points), ls.degree)
	}

	x, y, err := BuildDesignMatrices(points, ls.degree)
	if err != nil {
		return err
	}

	xtx, xty, err := NormalEquations(x, y)
	if err != nil {
		return err
	}

	// xtx, xtyはこの関数が所有するので、そのまま解に使う
	solution, err := Solve(xtx, xty, ls.solveOptions()...)
	if err != nil {
		return errors.NewModelError(op, "solve normal equations", err)
	}

	ls.coefficients = mat.Col(nil, 0, solution)
	ls.xMin = points[0].X
	ls.xMax = points[len(points)-1].X

	ls.logger.Debug("least-squares fit complete",
		log.ModelNameKey, "LeastSquares",
		log.OperationKey, log.OperationFit,
		log.DegreeKey, ls.degree,
		log.SamplesKey, len(points),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	// モデルを学習済み状態に設定
	ls.SetFitted()
	return nil
}

// Predict はxにおける多項式の値を返す。定義域の外でも外挿する
func (ls *LeastSquares) Predict(x float64) (float64, error) {
	p, err := ls.Polynomial()
	if err != nil {
		return 0, err
	}
	return p.Eval(x), nil
}

// Polynomial は学習された多項式を返す
func (ls *LeastSquares) Polynomial() (Polynomial, error) {
	if err := ls.RequireFitted("LeastSquares", "Polynomial"); err != nil {
		return Polynomial{}, err
	}
	return Polynomial{
		Coefficients: ls.Coefficients(),
		XMin:         ls.xMin,
		XMax:         ls.xMax,
		Method:       MethodLeastSquares,
	}, nil
}

// Polynomials はFitterを満たすため、単一の多項式をスライスで返す
func (ls *LeastSquares) Polynomials() ([]Polynomial, error) {
	p, err := ls.Polynomial()
	if err != nil {
		return nil, err
	}
	return []Polynomial{p}, nil
}

// Coefficients は学習された係数のコピーを返す。未学習ならnil
func (ls *LeastSquares) Coefficients() []float64 {
	if !ls.IsFitted() {
		return nil
	}
	out := make([]float64, len(ls.coefficients))
	copy(out, ls.coefficients)
	return out
}

// FitLeastSquares は次数degreeの最小二乗多項式を一度に求める
func FitLeastSquares(points []Point, degree int, opts ...Option) (Polynomial, error) {
	ls := NewLeastSquares(append(opts[:len(opts):len(opts)], WithDegree(degree))...)
	if err := ls.Fit(points); err != nil {
		return Polynomial{}, err
	}
	return ls.Polynomial()
}
