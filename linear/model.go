// Package linear は1変数の線形モデル y = a·x + b をバッチ勾配降下法で学習する
//
// 典型的な流れ:
//
//	d, err := dataset.Load("data.csv")
//	err = d.Normalize()
//	m := linear.New(0.01)
//	err = m.Train(d, 10000)
//	m, err = m.Denormalize(d) // 係数を元のスケールに戻す
//	err = d.Denormalize()
//	y := m.Estimate(42)
package linear

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/metrics"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Scale は係数がどの単位系で表されているかを示す
type Scale int

const (
	// NormalizedScale は正規化済みデータ上の係数
	NormalizedScale Scale = iota
	// OriginalScale は元データの単位での係数
	OriginalScale
)

func (s Scale) String() string {
	if s == OriginalScale {
		return "original"
	}
	return "normalized"
}

// LinearModel は1変数の線形回帰モデル
type LinearModel struct {
	model.BaseEstimator

	A            float64 // 傾き
	B            float64 // 切片
	LearningRate float64 // 学習率

	scale       Scale
	logger      log.Logger
	logInterval int
}

var _ model.Estimator = (*LinearModel)(nil)

// New は a=0, b=0 の新しいモデルを作成する
//
// 学習率は検証しない。0以下の値で Train を呼ぶと ConvergenceWarning が出る。
func New(learningRate float64, opts ...Option) *LinearModel {
	m := &LinearModel{
		LearningRate: learningRate,
		logInterval:  defaultLogInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Estimate は a*x + b を返す
func (m *LinearModel) Estimate(x float64) float64 {
	return m.A*x + m.B
}

// Scale は係数の単位系を返す
func (m *LinearModel) Scale() Scale {
	return m.scale
}

// Train はデータセット全体を使った勾配降下をちょうど iterations 回実行する
//
// 収束判定による打ち切りはしない。途中で係数が NaN や Inf になった場合は
// NumericalInstabilityError を返し、係数は最後の有限な値のまま残る。
// 学習率が0以下の場合や、学習後のコストが学習前より大きい場合は
// ConvergenceWarning を出すが、学習自体は最後まで行う。
func (m *LinearModel) Train(d *dataset.Dataset, iterations int) error {
	const op = "LinearModel.Train"

	if d.IsEmpty() {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if iterations < 0 {
		return errors.NewValueError(op, fmt.Sprintf("iterations must not be negative, got %d", iterations))
	}
	if !(m.LearningRate > 0) {
		errors.Warn(errors.NewConvergenceWarning("gradient descent", iterations,
			fmt.Sprintf("learning rate %g is not positive", m.LearningRate)))
	}

	logger := m.log().With(
		log.ModelNameKey, "LinearModel",
		log.OperationKey, log.OperationTrain,
		log.PhaseKey, log.PhaseTraining,
	)
	progress := m.logInterval > 0 && logger.Enabled(context.Background(), log.LevelDebug)

	start := time.Now()
	g := newGradient(d)
	initial := g.cost(m.A, m.B)
	if err := errors.CheckScalar("gradient_descent", initial, 0); err != nil {
		return err
	}

	logger.Debug("Training started",
		log.SamplesKey, d.Len(),
		log.IterationsKey, iterations,
		log.LearningRateKey, m.LearningRate,
		log.LossKey, initial,
	)

	for i := 1; i <= iterations; i++ {
		a, b := g.step(m.A, m.B, m.LearningRate)
		if err := errors.CheckNumericalStability("gradient_descent", []float64{a, b}, i); err != nil {
			logger.Debug("Training diverged", log.IterationKey, i)
			return err
		}
		m.A, m.B = a, b

		if progress && i%m.logInterval == 0 {
			logger.Debug("Training progress",
				log.IterationKey, i,
				log.LossKey, g.cost(m.A, m.B),
			)
		}
	}

	final := g.cost(m.A, m.B)
	if final > initial {
		errors.Warn(errors.NewConvergenceWarning("gradient descent", iterations,
			fmt.Sprintf("cost increased from %g to %g; the learning rate %g may be too large",
				initial, final, m.LearningRate)))
	}

	m.scale = NormalizedScale
	m.SetFitted()

	logger.Info("Training completed",
		log.IterationsKey, iterations,
		log.SlopeKey, m.A,
		log.InterceptKey, m.B,
		log.LossKey, final,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// GradientDescent は勾配降下を1ステップだけ実行する
//
// 新しい (a, b) はどちらも更新前の (a, b) から計算してから同時に書き戻す。
func (m *LinearModel) GradientDescent(d *dataset.Dataset) error {
	const op = "LinearModel.GradientDescent"

	if d.IsEmpty() {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	a, b := newGradient(d).step(m.A, m.B, m.LearningRate)
	if err := errors.CheckNumericalStability(op, []float64{a, b}, 1); err != nil {
		return err
	}
	m.A, m.B = a, b
	return nil
}

// Denormalize は正規化データ上で学習した係数を元データの単位に変換した
// 新しいモデルを返す。レシーバは変更しない。
//
// rx = x.max - x.min, ry = y.max - y.min とすると
//
//	a' = a * ry / rx
//	b' = ry * b + y.min - a' * x.min
//
// 既に元のスケールのモデルに対して呼ぶと ValueError を返すため、
// 二重に変換されることはない。
func (m *LinearModel) Denormalize(d *dataset.Dataset) (*LinearModel, error) {
	const op = "LinearModel.Denormalize"

	if m.scale == OriginalScale {
		return nil, errors.NewValueError(op, "coefficients are already in the original scale")
	}
	if !d.HasBounds() {
		return nil, errors.NewNotFittedError("Dataset", op)
	}

	rx := d.XMax() - d.XMin()
	ry := d.YMax() - d.YMin()

	out := *m
	out.A = m.A * ry / rx
	out.B = ry*m.B + d.YMin() - out.A*d.XMin()
	out.scale = OriginalScale

	m.log().Debug("Model denormalized",
		log.ModelNameKey, "LinearModel",
		log.SlopeKey, out.A,
		log.InterceptKey, out.B,
	)
	return &out, nil
}

// MeanAbsolutePercentageError は |estimate(x) - y| / y の平均を割合で返す
//
// y に0が含まれる場合は errors.ErrZeroDenominator に一致するエラーを返す。
func (m *LinearModel) MeanAbsolutePercentageError(d *dataset.Dataset) (float64, error) {
	yTrue, yPred, err := m.predict("LinearModel.MeanAbsolutePercentageError", d)
	if err != nil {
		return 0, err
	}
	return metrics.MAPE(yTrue, yPred)
}

// MeanSquaredError はデータセットに対する平均二乗誤差を返す
func (m *LinearModel) MeanSquaredError(d *dataset.Dataset) (float64, error) {
	yTrue, yPred, err := m.predict("LinearModel.MeanSquaredError", d)
	if err != nil {
		return 0, err
	}
	return metrics.MSE(yTrue, yPred)
}

// Score はデータセットに対する決定係数（R²）を返す
func (m *LinearModel) Score(d *dataset.Dataset) (float64, error) {
	yTrue, yPred, err := m.predict("LinearModel.Score", d)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yTrue, yPred)
}

func (m *LinearModel) predict(op string, d *dataset.Dataset) (yTrue, yPred *mat.VecDense, err error) {
	if d.IsEmpty() {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	n := d.Len()
	pred := make([]float64, 0, n)
	for x := range d.All() {
		pred = append(pred, m.Estimate(x))
	}
	return mat.NewVecDense(n, d.Y()), mat.NewVecDense(n, pred), nil
}

// String は LinearModel { a: 2.0, b: 1.0, learning_rate: 0.01 } の形式で返す
func (m *LinearModel) String() string {
	return fmt.Sprintf("LinearModel { a: %s, b: %s, learning_rate: %s }",
		formatFloat(m.A), formatFloat(m.B), formatFloat(m.LearningRate))
}

func (m *LinearModel) log() log.Logger {
	if m.logger != nil {
		return m.logger
	}
	return log.GetLogger()
}

// formatFloat は最短表現で、整数値にも小数点を付ける
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".IN") {
		return s
	}
	return s + ".0"
}

// gradient は学習中に使う列のコピーと残差バッファ
type gradient struct {
	x, y     []float64
	residual []float64
	n        float64
}

func newGradient(d *dataset.Dataset) *gradient {
	return &gradient{
		x:        d.X(),
		y:        d.Y(),
		residual: make([]float64, d.Len()),
		n:        float64(d.Len()),
	}
}

// residuals は estimate(x_i) - y_i を計算する
func (g *gradient) residuals(a, b float64) []float64 {
	floats.ScaleTo(g.residual, a, g.x)
	floats.AddConst(b, g.residual)
	floats.Sub(g.residual, g.y)
	return g.residual
}

// step は (a, b) から1ステップ進めた (a', b') を返す
func (g *gradient) step(a, b, learningRate float64) (float64, float64) {
	r := g.residuals(a, b)
	costA := floats.Dot(r, g.x) / g.n
	costB := floats.Sum(r) / g.n
	return a - learningRate*costA, b - learningRate*costB
}

// cost は平均二乗誤差
func (g *gradient) cost(a, b float64) float64 {
	r := g.residuals(a, b)
	return floats.Dot(r, r) / g.n
}
