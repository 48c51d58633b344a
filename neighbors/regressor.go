package neighbors

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/core/parallel"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/metrics"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
	"github.com/YuminosukeSato/gradlearn/preprocessing"
)

// KNNRegressor predicts a numeric target as the mean target of the k nearest
// training rows. Features are standardized with the training moments before
// distances are taken.
type KNNRegressor struct {
	scaler    *preprocessing.StandardScaler
	features  tensor.Table // standardized
	targets   []float64
	k         int
	threshold int
	logger    log.Logger
}

// NewKNNRegressor standardizes features and stores them with their targets.
// labels must be a single column with the same number of rows as features.
func NewKNNRegressor(features, labels tensor.Table, k int, opts ...Option) (*KNNRegressor, error) {
	o := buildOptions("KNNRegressor", opts)

	r, c := features.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewEmptyDataError("NewKNNRegressor")
	}
	if labels.Rows() != r {
		return nil, errors.NewDimensionError("NewKNNRegressor", r, labels.Rows(), 0)
	}
	if labels.Cols() != 1 {
		return nil, errors.NewDimensionError("NewKNNRegressor", 1, labels.Cols(), 1)
	}
	if k <= 0 {
		return nil, errors.NewValidationError("k", "must be positive", k)
	}
	if k > r {
		o.logger.Debug("k exceeds training rows, clamping", log.NeighborsKey, k, log.SamplesKey, r)
		k = r
	}

	scaler := preprocessing.NewStandardScaler()
	standardized, err := scaler.FitTransform(features)
	if err != nil {
		return nil, err
	}
	targets, _ := labels.Col(0)

	return &KNNRegressor{
		scaler:    scaler,
		features:  standardized,
		targets:   targets,
		k:         k,
		threshold: o.threshold,
		logger:    o.logger,
	}, nil
}

// Predict returns the averaged target for one query of raw feature values.
func (r *KNNRegressor) Predict(query []float64) (float64, error) {
	c := r.features.Cols()
	if len(query) != c {
		return 0, errors.NewDimensionError("KNNRegressor.Predict", c, len(query), 1)
	}
	q, err := tensor.New([][]float64{query})
	if err != nil {
		return 0, err
	}
	scaled, err := r.scaler.Transform(q)
	if err != nil {
		return 0, err
	}
	row, _ := scaled.Row(0)

	var sum float64
	for _, n := range nearest(r.features.Matrix(), c, row, r.k) {
		sum += r.targets[n.row]
	}
	return sum / float64(r.k), nil
}

// PredictAll predicts every row of observations and returns an n×1 table.
func (r *KNNRegressor) PredictAll(observations tensor.Table) (tensor.Table, error) {
	rows := observations.ToRows()
	if len(rows) == 0 {
		return tensor.Table{}, errors.NewEmptyDataError("KNNRegressor.PredictAll")
	}

	out := mat.NewDense(len(rows), 1, nil)
	errs := make([]error, len(rows))
	parallel.ParallelizeWithThreshold(len(rows), r.threshold, func(start, end int) {
		for i := start; i < end; i++ {
			v, err := r.Predict(rows[i])
			out.Set(i, 0, v)
			errs[i] = err
		}
	})
	for _, err := range errs {
		if err != nil {
			return tensor.Table{}, err
		}
	}
	return tensor.Wrap(out), nil
}

// Score returns R² of the predictions for testFeatures against testLabels.
func (r *KNNRegressor) Score(testFeatures, testLabels tensor.Table) (float64, error) {
	predicted, err := r.PredictAll(testFeatures)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2Score(testLabels.Matrix(), predicted.Matrix())
	if err != nil {
		return 0, err
	}
	r.logger.Info("Scored", log.OperationKey, log.OperationTest, log.R2ScoreKey, score)
	return score, nil
}
