// Package gradlearn provides from-scratch nearest-neighbor and gradient-descent
// models for Go, built on gonum matrices.
//
// Every model is constructed from its training data, trained with an explicit
// Train call, and evaluated with Test or Score. Numeric inputs are carried in
// tensor.Table values, a read-only wrapper around *mat.Dense.
//
// # Quick Start
//
// Fitting y = 2x + 3 with batch gradient descent:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gradlearn/core/tensor"
//	    "github.com/YuminosukeSato/gradlearn/linear"
//	)
//
//	func main() {
//	    X := tensor.MustNew([][]float64{{1}, {2}, {3}, {4}})
//	    y := tensor.MustNew([][]float64{{5}, {7}, {9}, {11}})
//
//	    model, err := linear.NewLinearRegression(X, y, linear.WithIterations(200))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.Train(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(tensor.MustNew([][]float64{{5}, {6}}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", predictions)
//	}
//
// # Packages
//
//   - core/tensor: Table, the immutable numeric table used everywhere
//   - core/model: estimator state and shared interfaces
//   - core/parallel: row-parallel helpers
//   - preprocessing: StandardScaler, MinMaxScaler, Normalize
//   - neighbors: KNN classification, accuracy sweeps, KNN regression
//   - optim: the adaptive learning-rate controller
//   - linear: linear, binary logistic and multinomial logistic regression
//   - metrics: MSE, R², accuracies, cross-entropies, History
//   - dataset: CSV loading, one-hot encoding, image flattening
//   - plot: training-curve charts
//   - pkg/errors, pkg/log, pkg/telemetry: errors, zerolog logging, Prometheus metrics
//
// # Learning Rate
//
// After each epoch the learning rate is halved when the loss went up and grown
// by 5% otherwise. The per-epoch loss history is exposed newest first.
package gradlearn
