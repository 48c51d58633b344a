package model

import "github.com/YuminosukeSato/gradlearn/core/tensor"

// GradientModel combines the interfaces shared by every gradient-descent model.
type GradientModel interface {
	Trainer
	Predictor
	Tester
	LossHistory
	AdaptiveLearning
	LinearModel
}

// Classifier is a GradientModel that also exposes class probabilities.
type Classifier interface {
	GradientModel

	// PredictProba returns the probability of the positive class (binary)
	// or one probability per class (multinomial) for every row.
	PredictProba(observations tensor.Table) (tensor.Table, error)
}

// Regressor is a GradientModel scored with R².
type Regressor interface {
	GradientModel
}

// LabelPredictor is implemented by instance-based classifiers that predict
// one integer label per query row.
type LabelPredictor interface {
	Predict(query []float64) (int, error)
	PredictAll(queries tensor.Table) ([]int, error)
	Score(testSet tensor.Table) (float64, error)
}
