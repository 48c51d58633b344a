package model

import (
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/metrics"
)

// Trainer は構築時に渡された訓練データで学習するモデルのインターフェース
type Trainer interface {
	// Train は設定されたエポック数だけ勾配降下を実行する
	Train() error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(observations tensor.Table) (tensor.Table, error)
}

// Tester はテストデータでモデルを評価するインターフェース
type Tester interface {
	// Test はモデル固有の指標（R² または正解率）を返す
	Test(testFeatures, testLabels tensor.Table) (float64, error)
}

// LossHistory は学習中の損失履歴（新しい順）を公開するインターフェース
type LossHistory interface {
	LossHistory() metrics.History
}

// AdaptiveLearning は現在の学習率を公開するインターフェース
type AdaptiveLearning interface {
	LearningRate() float64
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Weights は学習された重み行列（先頭行が切片）のコピーを返す
	Weights() tensor.Table
}
