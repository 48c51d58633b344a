package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// Normalize は全列を [0,1] に min-max スケーリングしたテーブルを返す
func Normalize(t tensor.Table) (tensor.Table, error) {
	return NewMinMaxScalerDefault().FitTransform(t)
}

// NormalizeFeatures は最終列（ラベル）を除く全列を [0,1] に min-max スケーリングする
//
// ラベル列は値を変えずにそのまま残す。KNN の精度評価では訓練データとテストデータを
// まとめて正規化してから分割する。
func NormalizeFeatures(t tensor.Table) (tensor.Table, error) {
	r, c := t.Dims()
	if r == 0 {
		return tensor.Table{}, errors.NewEmptyDataError("NormalizeFeatures")
	}
	if c < 2 {
		return tensor.Table{}, errors.NewDimensionError("NormalizeFeatures", 2, c, 1)
	}

	features, labels, err := t.SplitLabel()
	if err != nil {
		return tensor.Table{}, err
	}
	scaled, err := Normalize(features)
	if err != nil {
		return tensor.Table{}, err
	}

	var out mat.Dense
	out.Augment(scaled.Matrix(), labels.Matrix())
	return tensor.Wrap(&out), nil
}
