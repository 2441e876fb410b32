package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// checkPair は入力ベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewModelError(op, "empty vector", errors.ErrEmptyData)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// residuals は yPred - yTrue を新しいベクトルで返す
func residuals(yTrue, yPred *mat.VecDense) *mat.VecDense {
	var r mat.VecDense
	r.SubVec(yPred, yTrue)
	return &r
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yPred - yTrue)²
	r := residuals(yTrue, yPred)
	return mat.Dot(r, r) / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return mat.Norm(residuals(yTrue, yPred), 1) / float64(n), nil
}

// R2Score は決定係数（R²）を計算する
//
// yTrue がすべて同じ値の場合、全変動が0になるため ErrZeroDenominator を返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := mat.Sum(yTrue) / float64(n)

	// 全変動（TSS）と残差変動（RSS）
	var tss float64
	for i := 0; i < n; i++ {
		d := yTrue.AtVec(i) - yMean
		tss += d * d
	}
	r := residuals(yTrue, yPred)
	rss := mat.Dot(r, r)

	if tss == 0 {
		return 0, errors.NewValueErrorWrap("R2Score",
			"total sum of squares is zero (no variance in yTrue)", errors.ErrZeroDenominator)
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を割合（0.05 = 5%）で返す
//
// 各サンプルの誤差は |yPred - yTrue| / yTrue。yTrue に0が含まれる場合は
// 値を捨てずに ErrZeroDenominator を返す。
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		actual := yTrue.AtVec(i)
		if actual == 0 {
			return 0, errors.NewValueErrorWrap("MAPE",
				fmt.Sprintf("target value at index %d is zero", i), errors.ErrZeroDenominator)
		}
		sum += math.Abs(yPred.AtVec(i)-actual) / actual
	}
	return sum / float64(n), nil
}
