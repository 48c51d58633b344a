package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// Epsilon は log(0) を避けるために確率へ加える値
const Epsilon = 1e-7

// BinaryAccuracy は {0,1} 予測の正解率 (n - Σ|pred - actual|) / n を計算する
func BinaryAccuracy(yTrue, yPred mat.Matrix) (float64, error) {
	n, c, err := sameShape("BinaryAccuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if c != 1 {
		return 0, errors.NewDimensionError("BinaryAccuracy", 1, c, 1)
	}

	var incorrect float64
	for i := 0; i < n; i++ {
		incorrect += math.Abs(yPred.At(i, 0) - yTrue.At(i, 0))
	}
	return (float64(n) - incorrect) / float64(n), nil
}

// ArgmaxAccuracy は行ごとの argmax が一致する割合を計算する
//
// yTrue は one-hot ラベル、yPred は確率（またはスコア）で、どちらも n × クラス数。
func ArgmaxAccuracy(yTrue, yPred mat.Matrix) (float64, error) {
	n, c, err := sameShape("ArgmaxAccuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	rowTrue := make([]float64, c)
	rowPred := make([]float64, c)
	var incorrect int
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			rowTrue[j] = yTrue.At(i, j)
			rowPred[j] = yPred.At(i, j)
		}
		if floats.MaxIdx(rowTrue) != floats.MaxIdx(rowPred) {
			incorrect++
		}
	}
	return float64(n-incorrect) / float64(n), nil
}

// BinaryCrossEntropy は二値交差エントロピーを計算する
//
//	-(1/n) Σ [ y·log(p + ε) + (1 - y)·log(1 - p + ε) ]
func BinaryCrossEntropy(yTrue, yProb mat.Matrix) (float64, error) {
	n, c, err := sameShape("BinaryCrossEntropy", yTrue, yProb)
	if err != nil {
		return 0, err
	}
	if c != 1 {
		return 0, errors.NewDimensionError("BinaryCrossEntropy", 1, c, 1)
	}

	var sum float64
	for i := 0; i < n; i++ {
		y := yTrue.At(i, 0)
		p := yProb.At(i, 0)
		sum += y*math.Log(p+Epsilon) + (1-y)*math.Log(1-p+Epsilon)
	}
	return -sum / float64(n), nil
}

// CategoricalCrossEntropy は多クラス交差エントロピーを計算する
//
//	-(1/n) Σᵢ Σc yᵢc·log(ŷᵢc + ε)
func CategoricalCrossEntropy(yTrue, yProb mat.Matrix) (float64, error) {
	n, c, err := sameShape("CategoricalCrossEntropy", yTrue, yProb)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			if y := yTrue.At(i, j); y != 0 {
				sum += y * math.Log(yProb.At(i, j)+Epsilon)
			}
		}
	}
	return -sum / float64(n), nil
}
