// Package optim holds the learning-rate controller consulted after every epoch.
package optim

import "github.com/YuminosukeSato/gradlearn/metrics"

const (
	// DecayFactor は損失が増加したときに学習率へ掛ける値
	DecayFactor = 0.5
	// GrowthFactor は損失が増加しなかったときに学習率へ掛ける値
	GrowthFactor = 1.05
)

// AdaptiveRate は損失履歴に応じて学習率を調整する
//
// 最新の損失が直前より大きければ学習率を半分にし、そうでなければ5%増やす。
// 1つのモデルが所有し、並行利用は想定しない。
type AdaptiveRate struct {
	rate float64
}

// NewAdaptiveRate は初期学習率 rate のコントローラを作成する
func NewAdaptiveRate(rate float64) *AdaptiveRate {
	return &AdaptiveRate{rate: rate}
}

// Rate は現在の学習率を返す
func (a *AdaptiveRate) Rate() float64 {
	return a.rate
}

// Adjust は新しい順の履歴 history を見て学習率を更新し、更新後の値を返す
//
// 履歴が2件未満なら何もしない。
func (a *AdaptiveRate) Adjust(history metrics.History) float64 {
	if history.Len() < 2 {
		return a.rate
	}
	if history[0] > history[1] {
		a.rate *= DecayFactor
	} else {
		a.rate *= GrowthFactor
	}
	return a.rate
}
