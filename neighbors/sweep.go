package neighbors

import (
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/preprocessing"
)

// AccuracyByK scores testSet against trainingSet once per k in ks and returns
// the accuracies in the same order as ks.
func AccuracyByK(testSet, trainingSet tensor.Table, ks []int, opts ...Option) ([]float64, error) {
	if len(ks) == 0 {
		return nil, errors.NewValidationError("ks", "must not be empty", ks)
	}

	out := make([]float64, len(ks))
	for i, k := range ks {
		clf, err := NewKNNClassifier(trainingSet, k, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "k=%d", k)
		}
		if out[i], err = clf.Score(testSet); err != nil {
			return nil, errors.Wrapf(err, "k=%d", k)
		}
	}
	return out, nil
}

// AccuracyByFeature measures how well each feature predicts the label on its own.
//
// For every feature column of data it builds a two-column table (feature, label),
// min-max normalizes the feature, uses the first testSize rows as the test set and
// the rest as the training set, and scores a k-nearest-neighbor classifier.
// The returned slice holds one accuracy per feature column.
func AccuracyByFeature(data tensor.Table, testSize, k int, opts ...Option) ([]float64, error) {
	r, c := data.Dims()
	if r == 0 {
		return nil, errors.NewEmptyDataError("AccuracyByFeature")
	}
	if c < 2 {
		return nil, errors.NewDimensionError("AccuracyByFeature", 2, c, 1)
	}
	if testSize <= 0 || testSize >= r {
		return nil, errors.NewValidationError("testSize", "must leave at least one training row", testSize)
	}

	label := c - 1
	out := make([]float64, label)
	for feature := 0; feature < label; feature++ {
		pair, err := data.Columns(feature, label)
		if err != nil {
			return nil, err
		}
		normalized, err := preprocessing.NormalizeFeatures(pair)
		if err != nil {
			return nil, err
		}
		testSet, err := normalized.Slice(0, testSize)
		if err != nil {
			return nil, err
		}
		trainingSet, err := normalized.Slice(testSize, r)
		if err != nil {
			return nil, err
		}

		clf, err := NewKNNClassifier(trainingSet, k, opts...)
		if err != nil {
			return nil, err
		}
		if out[feature], err = clf.Score(testSet); err != nil {
			return nil, errors.Wrapf(err, "feature %d", feature)
		}
	}
	return out, nil
}
