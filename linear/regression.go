package linear

import (
	"github.com/YuminosukeSato/gradlearn/core/model"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/metrics"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// LinearRegression は勾配降下で学習する線形回帰モデル
type LinearRegression struct {
	*gradientDescent
}

// NewLinearRegression は訓練データを標準化し、ゼロ重みのモデルを作成する
//
// パラメータ:
//   - features: 訓練特徴量 (n_samples × n_features)
//   - labels: 目的変数 (n_samples × 1)
//   - opts: 学習率・エポック数・バッチサイズなどのオプション
//
// 戻り値:
//   - *LinearRegression: 構築済み（未学習）のモデル
//   - error: 形状が合わない場合は DimensionError、設定が不正な場合は ValidationError
//
// 使用例:
//
//	lr, err := linear.NewLinearRegression(X, y, linear.WithLearningRate(0.1), linear.WithBatchSize(10))
//	err = lr.Train()
//	r2, err := lr.Test(XTest, yTest)
func NewLinearRegression(features, labels tensor.Table, opts ...Option) (*LinearRegression, error) {
	if c := labels.Cols(); c != 1 && !labels.IsEmpty() {
		return nil, errors.NewDimensionError("NewLinearRegression", 1, c, 1)
	}
	gd, err := newGradientDescent("LinearRegression", features, labels, Identity, metrics.MSE, opts)
	if err != nil {
		return nil, err
	}
	return &LinearRegression{gradientDescent: gd}, nil
}

// Train はエポックごとに全バッチで重みを更新し、訓練データ全体のMSEを記録する
func (lr *LinearRegression) Train() error {
	return lr.train()
}

// Predict は観測値に対する予測値 (n × 1) を返す
//
// 学習前でも呼び出せる（ゼロ重みでは全て0を返す）。
func (lr *LinearRegression) Predict(observations tensor.Table) (out tensor.Table, err error) {
	defer errors.Recover(&err, "LinearRegression.Predict")

	estimate, err := lr.output("LinearRegression.Predict", observations)
	if err != nil {
		return tensor.Table{}, err
	}
	return tensor.Wrap(estimate), nil
}

// Test はテストデータに対する決定係数 R² を返す（負になりうる）
func (lr *LinearRegression) Test(testFeatures, testLabels tensor.Table) (score float64, err error) {
	defer errors.Recover(&err, "LinearRegression.Test")

	if err := lr.checkLabels("LinearRegression.Test", testFeatures, testLabels); err != nil {
		return 0, err
	}
	predictions, err := lr.output("LinearRegression.Test", testFeatures)
	if err != nil {
		return 0, err
	}
	score, err = metrics.R2Score(testLabels.Matrix(), predictions)
	if err != nil {
		return 0, err
	}
	lr.logTest(log.R2ScoreKey, score, testFeatures.Rows())
	return score, nil
}

// MSEHistory はエポックごとのMSE（新しい順）を返す
func (lr *LinearRegression) MSEHistory() metrics.History {
	return lr.LossHistory()
}

var _ model.Regressor = (*LinearRegression)(nil)
