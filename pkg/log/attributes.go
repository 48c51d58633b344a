// Package log defines standard attribute keys for training and evaluation.
//
// Using these keys keeps log lines from every model comparable. Keys follow a
// hierarchical naming convention (e.g., "model.name", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "StandardScaler", "KNNClassifier"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "train", "predict", "test", "classify", "transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of label columns (classes for multinomial models).
	TargetsKey = "data.targets"

	// BatchSizeKey indicates the size of gradient-descent batches.
	BatchSizeKey = "data.batch_size"

	// BatchesKey indicates the number of full batches processed per epoch.
	BatchesKey = "data.batches"

	// DroppedRowsKey indicates trailing rows that did not fill a batch.
	DroppedRowsKey = "data.dropped_rows"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy, range [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// LossKey records the per-epoch loss (MSE or cross-entropy).
	LossKey = "metrics.loss"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// EpochKey records the current epoch number during training.
	EpochKey = "training.epoch"
)

// Prediction Context
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// NeighborsKey records k for nearest-neighbor queries.
	NeighborsKey = "preds.neighbors"

	// ThresholdKey records the decision boundary used for binary classification.
	ThresholdKey = "preds.threshold"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters
const (
	// LearningRateKey records the current learning rate.
	LearningRateKey = "hyperparams.learning_rate"

	// IterationsKey records the configured number of epochs.
	IterationsKey = "hyperparams.iterations"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationTrain     = "train"
	OperationPredict   = "predict"
	OperationTest      = "test"
	OperationClassify  = "classify"
	OperationTransform = "transform"
	OperationFit       = "fit"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidConfig     = "INVALID_CONFIGURATION"
	ErrorIndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
