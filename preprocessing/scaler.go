package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// MinMaxScale は値を [0, 1] にスケーリングした新しいスライスと、
// スケーリングに使った最小値・最大値を返す純粋関数
//
// 各値は (v - min) / (max - min) に変換される。入力は変更しない。
//
// 戻り値のエラー:
//   - errors.ErrEmptyData: values が空の場合
//   - errors.ErrZeroRange: 最小値と最大値が等しい場合（全要素が同じ値）
func MinMaxScale(values []float64) (scaled []float64, lo, hi float64, err error) {
	if len(values) == 0 {
		return nil, 0, 0, errors.NewModelError("MinMaxScale", "empty data", errors.ErrEmptyData)
	}

	// 線形走査で最小値・最大値を求める
	lo = floats.Min(values)
	hi = floats.Max(values)

	dataRange := hi - lo
	if dataRange == 0 {
		return nil, lo, hi, errors.NewValueErrorWrap("MinMaxScale",
			fmt.Sprintf("cannot normalize: all %d values equal %g", len(values), lo), errors.ErrZeroRange)
	}

	scaled = make([]float64, len(values))
	for i, v := range values {
		scaled[i] = (v - lo) / dataRange
	}
	return scaled, lo, hi, nil
}

// InverseMinMaxScale は MinMaxScale の逆変換 v*(max-min)+min を適用した新しいスライスを返す
//
// lo, hi は明示的に渡すため、直前の呼び出しの状態に依存しない。
func InverseMinMaxScale(scaled []float64, lo, hi float64) []float64 {
	dataRange := hi - lo
	original := make([]float64, len(scaled))
	for i, v := range scaled {
		original[i] = v*dataRange + lo
	}
	return original
}

// MinMaxScaler は1次元データ用のMin-Maxスケーラー
// Fit で学習した最小値・最大値を保持し、Transform と InverseTransform で再利用する
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin は学習データの最小値
	DataMin float64

	// DataMax は学習データの最大値
	DataMax float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler()
//	scaled, err := scaler.FitTransform(values)
//	original, err := scaler.InverseTransform(scaled)
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

// Fit は訓練データから最小値・最大値を計算する
//
// 失敗した場合、以前に学習した状態はそのまま残る。
func (m *MinMaxScaler) Fit(values []float64) error {
	_, err := m.FitTransform(values)
	return err
}

// Transform は学習済みの最小値・最大値を使ってデータをスケーリングする
func (m *MinMaxScaler) Transform(values []float64) ([]float64, error) {
	if err := m.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}

	dataRange := m.DataMax - m.DataMin
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = (v - m.DataMin) / dataRange
	}
	return scaled, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(values []float64) ([]float64, error) {
	scaled, lo, hi, err := MinMaxScale(values)
	if err != nil {
		return nil, err
	}

	m.DataMin = lo
	m.DataMax = hi
	m.SetFitted()
	return scaled, nil
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(scaled []float64) ([]float64, error) {
	if err := m.RequireFitted("MinMaxScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	return InverseMinMaxScale(scaled, m.DataMin, m.DataMax), nil
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return "MinMaxScaler()"
	}
	return fmt.Sprintf("MinMaxScaler(data_min=%g, data_max=%g)", m.DataMin, m.DataMax)
}
