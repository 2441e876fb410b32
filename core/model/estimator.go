package model

// Estimator は1変数の予測を行うモデルのインターフェース
type Estimator interface {
	// Estimate は x に対する予測値を返す
	Estimate(x float64) float64
}
