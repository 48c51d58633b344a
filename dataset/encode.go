package dataset

import (
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// OneHot はクラス番号の列を one-hot 表現 (n × classes) に変換する
func OneHot(labels []int, classes int) (tensor.Table, error) {
	if len(labels) == 0 {
		return tensor.Table{}, errors.NewEmptyDataError("dataset.OneHot")
	}
	if classes < 2 {
		return tensor.Table{}, errors.NewValidationError("classes", "must be at least 2", classes)
	}

	rows := make([][]float64, len(labels))
	for i, label := range labels {
		if label < 0 || label >= classes {
			return tensor.Table{}, errors.NewIndexError("dataset.OneHot", label, classes, 1)
		}
		rows[i] = make([]float64, classes)
		rows[i][label] = 1
	}
	return tensor.New(rows)
}

// Flatten は各画像（行 × 列のピクセル値）を1行に平坦化する
//
// すべての画像は同じ大きさでなければならない。
func Flatten(images [][][]float64) (tensor.Table, error) {
	if len(images) == 0 {
		return tensor.Table{}, errors.NewEmptyDataError("dataset.Flatten")
	}

	width := -1
	rows := make([][]float64, len(images))
	for i, img := range images {
		var flat []float64
		for _, pixels := range img {
			flat = append(flat, pixels...)
		}
		if width < 0 {
			width = len(flat)
		}
		if len(flat) != width {
			return tensor.Table{}, errors.NewDimensionError("dataset.Flatten", width, len(flat), 1)
		}
		rows[i] = flat
	}
	return tensor.New(rows)
}
