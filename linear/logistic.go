package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/core/model"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/metrics"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// LogisticRegression は二値分類のロジスティック回帰モデル
type LogisticRegression struct {
	*gradientDescent
}

// NewLogisticRegression はラベルが {0,1} の単一列である二値分類モデルを作成する
func NewLogisticRegression(features, labels tensor.Table, opts ...Option) (*LogisticRegression, error) {
	if c := labels.Cols(); c != 1 && !labels.IsEmpty() {
		return nil, errors.NewDimensionError("NewLogisticRegression", 1, c, 1)
	}
	gd, err := newGradientDescent("LogisticRegression", features, labels, Sigmoid, metrics.BinaryCrossEntropy, opts)
	if err != nil {
		return nil, err
	}
	return &LogisticRegression{gradientDescent: gd}, nil
}

// Train はエポックごとに全バッチで重みを更新し、訓練データ全体の交差エントロピーを記録する
func (lr *LogisticRegression) Train() error {
	return lr.train()
}

// PredictProba は各行が正例である確率 (n × 1) を返す
func (lr *LogisticRegression) PredictProba(observations tensor.Table) (out tensor.Table, err error) {
	defer errors.Recover(&err, "LogisticRegression.PredictProba")

	probs, err := lr.output("LogisticRegression.PredictProba", observations)
	if err != nil {
		return tensor.Table{}, err
	}
	return tensor.Wrap(probs), nil
}

// Predict は確率が DecisionBoundary を超える行を1、それ以外を0とする (n × 1)
func (lr *LogisticRegression) Predict(observations tensor.Table) (out tensor.Table, err error) {
	defer errors.Recover(&err, "LogisticRegression.Predict")

	probs, err := lr.output("LogisticRegression.Predict", observations)
	if err != nil {
		return tensor.Table{}, err
	}
	return tensor.Wrap(lr.threshold(probs)), nil
}

func (lr *LogisticRegression) threshold(probs *mat.Dense) *mat.Dense {
	boundary := lr.config.DecisionBoundary
	probs.Apply(func(_, _ int, p float64) float64 {
		if p > boundary {
			return 1
		}
		return 0
	}, probs)
	return probs
}

// Test はテストデータに対する正解率 (n - Σ|予測 - 正解|) / n を返す
func (lr *LogisticRegression) Test(testFeatures, testLabels tensor.Table) (score float64, err error) {
	defer errors.Recover(&err, "LogisticRegression.Test")

	if err := lr.checkLabels("LogisticRegression.Test", testFeatures, testLabels); err != nil {
		return 0, err
	}
	probs, err := lr.output("LogisticRegression.Test", testFeatures)
	if err != nil {
		return 0, err
	}
	score, err = metrics.BinaryAccuracy(testLabels.Matrix(), lr.threshold(probs))
	if err != nil {
		return 0, err
	}
	lr.logTest(log.AccuracyKey, score, testFeatures.Rows())
	return score, nil
}

// CrossEntropyHistory はエポックごとの交差エントロピー（新しい順）を返す
func (lr *LogisticRegression) CrossEntropyHistory() metrics.History {
	return lr.LossHistory()
}

var _ model.Classifier = (*LogisticRegression)(nil)
