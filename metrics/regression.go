// Package metrics implements the evaluation formulas shared by every model:
// regression errors, R², accuracies and cross-entropy losses.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
//
// yTrue と yPred は同じ形状であること。複数列の場合は全要素で平均する。
func MSE(yTrue, yPred mat.Matrix) (float64, error) {
	n, c, err := sameShape("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			diff := yTrue.At(i, j) - yPred.At(i, j)
			sum += diff * diff
		}
	}

	return sum / float64(n*c), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Matrix) (float64, error) {
	n, c, err := sameShape("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			sum += math.Abs(yTrue.At(i, j) - yPred.At(i, j))
		}
	}

	return sum / float64(n*c), nil
}

// R2Score は決定係数（R²）を計算する
//
// R² = 1 - SSres/SStot。平均より悪い予測では負になる。
// yTrue の全変動が0の場合は UndefinedMetricWarning を通知して0を返す。
func R2Score(yTrue, yPred mat.Matrix) (float64, error) {
	n, c, err := sameShape("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if c != 1 {
		return 0, errors.NewDimensionError("R2Score", 1, c, 1)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.At(i, 0)
	}
	yMean /= float64(n)

	// 全変動（SStot）と残差変動（SSres）
	var ssTot, ssRes float64
	for i := 0; i < n; i++ {
		y := yTrue.At(i, 0)
		ssTot += (y - yMean) * (y - yMean)
		ssRes += (y - yPred.At(i, 0)) * (y - yPred.At(i, 0))
	}

	if ssTot == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "total sum of squares is zero", 0))
		return 0, nil
	}

	return 1 - ssRes/ssTot, nil
}

// sameShape は2つの行列が空でなく同じ形状であることを検証する
func sameShape(op string, yTrue, yPred mat.Matrix) (rows, cols int, err error) {
	if yTrue == nil || yPred == nil {
		return 0, 0, errors.NewEmptyDataError(op)
	}
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, 0, errors.NewEmptyDataError(op)
	}
	if rTrue != rPred {
		return 0, 0, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, 0, errors.NewDimensionError(op, cTrue, cPred, 1)
	}
	return rTrue, cTrue, nil
}
