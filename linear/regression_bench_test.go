package linear

import (
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) (tensor.Table, tensor.Table) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	trueWeights := make([]float64, cols)
	for j := range trueWeights {
		trueWeights[j] = float64(j+1) * 0.5
	}

	X := make([][]float64, rows)
	y := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		X[i] = make([]float64, cols)
		sum := 1.0 // 切片
		for j := 0; j < cols; j++ {
			X[i][j] = rng.Float64()*2.0 - 1.0
			sum += X[i][j] * trueWeights[j]
		}
		// 小さなノイズを追加
		y[i] = []float64{sum + (rng.Float64()-0.5)*0.1}
	}

	return tensor.MustNew(X), tensor.MustNew(y)
}

// BenchmarkLinearRegressionTrain はTrainメソッドのベンチマークを実行する
func BenchmarkLinearRegressionTrain(b *testing.B) {
	sizes := []struct {
		name      string
		rows      int
		cols      int
		batchSize int
	}{
		{"Small_100x10_full", 100, 10, 0},
		{"Small_500x10_batch50", 500, 10, 50},
		{"Medium_2000x10_batch100", 2000, 10, 100},
		{"Large_10000x20_batch500", 10000, 20, 500},
	}

	quiet, _ := log.NewTestLogger(log.LevelError)
	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lr, err := NewLinearRegression(X, y,
					WithIterations(20),
					WithBatchSize(size.batchSize),
					WithLogger(quiet),
				)
				if err != nil {
					b.Fatal(err)
				}
				if err := lr.Train(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkMultinomialPredict は学習済みモデルの推論のベンチマーク
func BenchmarkMultinomialPredict(b *testing.B) {
	X, y := createBenchmarkData(2000, 10)

	labels := make([][]float64, y.Rows())
	for i := range labels {
		v, _ := y.At(i, 0)
		labels[i] = make([]float64, 3)
		switch {
		case v < 0:
			labels[i][0] = 1
		case v < 3:
			labels[i][1] = 1
		default:
			labels[i][2] = 1
		}
	}

	quiet, _ := log.NewTestLogger(log.LevelError)
	m, err := NewMultinomialLogisticRegression(X, tensor.MustNew(labels), WithIterations(20), WithLogger(quiet))
	if err != nil {
		b.Fatal(err)
	}
	if err := m.Train(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}
