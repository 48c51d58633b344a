package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/core/model"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/metrics"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// MultinomialLogisticRegression は softmax による多クラス分類モデル
//
// ラベルは one-hot 表現 (n × クラス数) で与える。
type MultinomialLogisticRegression struct {
	*gradientDescent
}

// NewMultinomialLogisticRegression は one-hot ラベルから多クラス分類モデルを作成する
func NewMultinomialLogisticRegression(features, labels tensor.Table, opts ...Option) (*MultinomialLogisticRegression, error) {
	if c := labels.Cols(); c < 2 && !labels.IsEmpty() {
		return nil, errors.NewDimensionError("NewMultinomialLogisticRegression", 2, c, 1)
	}
	gd, err := newGradientDescent("MultinomialLogisticRegression", features, labels, Softmax, metrics.CategoricalCrossEntropy, opts)
	if err != nil {
		return nil, err
	}
	return &MultinomialLogisticRegression{gradientDescent: gd}, nil
}

// Train はエポックごとに全バッチで重みを更新し、訓練データ全体の交差エントロピーを記録する
func (m *MultinomialLogisticRegression) Train() error {
	return m.train()
}

// Classes はクラス数を返す
func (m *MultinomialLogisticRegression) Classes() int {
	_, c := m.labels.Dims()
	return c
}

// PredictProba は各行のクラス確率 (n × クラス数) を返す。各行の和は1。
func (m *MultinomialLogisticRegression) PredictProba(observations tensor.Table) (out tensor.Table, err error) {
	defer errors.Recover(&err, "MultinomialLogisticRegression.PredictProba")

	probs, err := m.output("MultinomialLogisticRegression.PredictProba", observations)
	if err != nil {
		return tensor.Table{}, err
	}
	return tensor.Wrap(probs), nil
}

// Predict は各行で確率が最大のクラス番号 (n × 1) を返す
func (m *MultinomialLogisticRegression) Predict(observations tensor.Table) (out tensor.Table, err error) {
	defer errors.Recover(&err, "MultinomialLogisticRegression.Predict")

	probs, err := m.output("MultinomialLogisticRegression.Predict", observations)
	if err != nil {
		return tensor.Table{}, err
	}
	classes := tensor.Wrap(probs).Argmax()
	column := mat.NewDense(len(classes), 1, nil)
	for i, c := range classes {
		column.Set(i, 0, float64(c))
	}
	return tensor.Wrap(column), nil
}

// Test はテストデータに対する正解率 (n - 不一致数) / n を返す
//
// testLabels は one-hot 表現で、各行の argmax を正解クラスとする。
func (m *MultinomialLogisticRegression) Test(testFeatures, testLabels tensor.Table) (score float64, err error) {
	defer errors.Recover(&err, "MultinomialLogisticRegression.Test")

	if err := m.checkLabels("MultinomialLogisticRegression.Test", testFeatures, testLabels); err != nil {
		return 0, err
	}
	probs, err := m.output("MultinomialLogisticRegression.Test", testFeatures)
	if err != nil {
		return 0, err
	}
	score, err = metrics.ArgmaxAccuracy(testLabels.Matrix(), probs)
	if err != nil {
		return 0, err
	}
	m.logTest(log.AccuracyKey, score, testFeatures.Rows())
	return score, nil
}

// CrossEntropyHistory はエポックごとの交差エントロピー（新しい順）を返す
func (m *MultinomialLogisticRegression) CrossEntropyHistory() metrics.History {
	return m.LossHistory()
}

var _ model.Classifier = (*MultinomialLogisticRegression)(nil)
