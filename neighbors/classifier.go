package neighbors

import (
	"github.com/google/uuid"

	"github.com/YuminosukeSato/gradlearn/core/model"
	"github.com/YuminosukeSato/gradlearn/core/parallel"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// Classify predicts the label of query by majority vote among the k training
// rows closest to it.
//
// query is either a full labeled row (its last value is ignored) or the
// feature values alone. k larger than the training set is clamped to its row
// count. When several labels share the highest vote count the smallest label wins.
func Classify(trainingSet tensor.Table, query []float64, k int) (int, error) {
	return classify(trainingSet, query, k, log.GetLoggerWithName("neighbors"))
}

func classify(trainingSet tensor.Table, query []float64, k int, logger log.Logger) (int, error) {
	width, k, err := validate("Classify", trainingSet, k, logger)
	if err != nil {
		return 0, err
	}
	q, err := featurePrefix("Classify", query, width)
	if err != nil {
		return 0, err
	}

	m := trainingSet.Matrix()
	votes := make(map[int]int, k)
	for _, n := range nearest(m, width, q, k) {
		votes[tensor.RoundedLabel(m.At(n.row, width))]++
	}
	return majority(votes), nil
}

// validate checks the training set and k, and returns the feature width
// together with k clamped to the number of rows.
func validate(op string, trainingSet tensor.Table, k int, logger log.Logger) (width, clamped int, err error) {
	r, c := trainingSet.Dims()
	if r == 0 {
		return 0, 0, errors.NewEmptyDataError(op)
	}
	if c < 2 {
		return 0, 0, errors.NewDimensionError(op, 2, c, 1)
	}
	if k <= 0 {
		return 0, 0, errors.NewValidationError("k", "must be positive", k)
	}
	if k > r {
		logger.Debug("k exceeds training rows, clamping",
			log.NeighborsKey, k,
			log.SamplesKey, r,
		)
		k = r
	}
	return c - 1, k, nil
}

// featurePrefix accepts a query of width features or width+1 (labeled row).
func featurePrefix(op string, query []float64, width int) ([]float64, error) {
	switch len(query) {
	case width, width + 1:
		return query[:width], nil
	default:
		return nil, errors.NewDimensionError(op, width, len(query), 1)
	}
}

// majority returns the label with the most votes, preferring the smallest label on ties.
func majority(votes map[int]int) int {
	best, bestCount := 0, -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best
}

// KNNClassifier holds a labeled training table and k.
type KNNClassifier struct {
	trainingSet tensor.Table
	k           int
	threshold   int
	logger      log.Logger
}

// Option configures a KNNClassifier or KNNRegressor.
type Option func(*options)

type options struct {
	threshold int
	logger    log.Logger
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithParallelThreshold sets the number of query rows above which PredictAll
// fans out across goroutines.
func WithParallelThreshold(rows int) Option {
	return func(o *options) {
		o.threshold = rows
	}
}

func buildOptions(name string, opts []Option) options {
	o := options{threshold: parallel.DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName("neighbors")
	}
	o.logger = o.logger.With(
		log.ModelNameKey, name,
		log.EstimatorIDKey, uuid.NewString(),
	)
	return o
}

// NewKNNClassifier validates trainingSet and k and returns a classifier.
func NewKNNClassifier(trainingSet tensor.Table, k int, opts ...Option) (*KNNClassifier, error) {
	o := buildOptions("KNNClassifier", opts)
	if _, _, err := validate("NewKNNClassifier", trainingSet, k, o.logger); err != nil {
		return nil, err
	}
	return &KNNClassifier{
		trainingSet: trainingSet,
		k:           k,
		threshold:   o.threshold,
		logger:      o.logger,
	}, nil
}

// K returns the configured number of neighbors.
func (c *KNNClassifier) K() int {
	return c.k
}

// Predict classifies a single query row.
func (c *KNNClassifier) Predict(query []float64) (int, error) {
	return classify(c.trainingSet, query, c.k, c.logger)
}

// PredictAll classifies every row of queries. Rows are processed in parallel
// for large inputs; the result order matches the input order.
func (c *KNNClassifier) PredictAll(queries tensor.Table) ([]int, error) {
	rows := queries.ToRows()
	if len(rows) == 0 {
		return nil, errors.NewEmptyDataError("KNNClassifier.PredictAll")
	}

	labels := make([]int, len(rows))
	errs := make([]error, len(rows))
	parallel.ParallelizeWithThreshold(len(rows), c.threshold, func(start, end int) {
		for i := start; i < end; i++ {
			labels[i], errs[i] = classify(c.trainingSet, rows[i], c.k, c.logger)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	c.logger.Debug("Prediction finished",
		log.OperationKey, log.OperationClassify,
		log.PredsKey, len(labels),
		log.NeighborsKey, c.k,
	)
	return labels, nil
}

// Score returns the fraction of testSet rows whose predicted label equals
// their last column.
func (c *KNNClassifier) Score(testSet tensor.Table) (float64, error) {
	if testSet.Cols() != c.trainingSet.Cols() {
		return 0, errors.NewDimensionError("KNNClassifier.Score", c.trainingSet.Cols(), testSet.Cols(), 1)
	}
	predicted, err := c.PredictAll(testSet)
	if err != nil {
		return 0, err
	}

	last := testSet.Cols() - 1
	actual, err := testSet.Col(last)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, label := range predicted {
		if label == tensor.RoundedLabel(actual[i]) {
			correct++
		}
	}

	accuracy := float64(correct) / float64(len(predicted))
	c.logger.Info("Scored",
		log.OperationKey, log.OperationTest,
		log.AccuracyKey, accuracy,
		log.NeighborsKey, c.k,
	)
	return accuracy, nil
}

var _ model.LabelPredictor = (*KNNClassifier)(nil)
