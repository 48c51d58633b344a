package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// plinko returns 40 drops whose label depends only on the drop position
// (column 0). Column 1 cycles through three values. The first six rows are
// interior drops used as the test set.
func plinko() tensor.Table {
	testIdx := map[int]bool{3: true, 10: true, 16: true, 25: true, 31: true, 37: true}
	var test, train [][]float64
	for i := 0; i < 40; i++ {
		label := 1.0
		if i >= 20 {
			label = 2
		}
		row := []float64{float64(i * 15), float64(i % 3), label}
		if testIdx[i] {
			test = append(test, row)
		} else {
			train = append(train, row)
		}
	}
	return tensor.MustNew(append(test, train...))
}

func TestAccuracyByK(t *testing.T) {
	data := plinko()
	testSet, err := data.Slice(0, 6)
	require.NoError(t, err)
	trainingSet, err := data.Slice(6, data.Rows())
	require.NoError(t, err)

	acc, err := AccuracyByK(testSet, trainingSet, []int{1, 3, 34})
	require.NoError(t, err)
	require.Len(t, acc, 3)

	for _, a := range acc {
		assert.GreaterOrEqual(t, a, 0.0)
		assert.LessOrEqual(t, a, 1.0)
	}
	// k=1 は隣の落下位置で判定できる
	assert.InDelta(t, 1.0, acc[0], 1e-12)
	// k=34 は訓練全体の多数決で、17対17の同数なので小さいラベル1になる
	assert.InDelta(t, 0.5, acc[2], 1e-12)

	_, err = AccuracyByK(testSet, trainingSet, nil)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = AccuracyByK(testSet, trainingSet, []int{0})
	assert.True(t, errors.As(err, &ve))
}

func TestAccuracyByFeature(t *testing.T) {
	acc, err := AccuracyByFeature(plinko(), 6, 1)
	require.NoError(t, err)
	require.Len(t, acc, 2)

	// 位置だけで完全に分類でき、周期的な列は全て先頭の訓練行（ラベル1）に一致する
	assert.InDelta(t, 1.0, acc[0], 1e-12)
	assert.InDelta(t, 0.5, acc[1], 1e-12)
}

func TestAccuracyByFeature_Errors(t *testing.T) {
	data := plinko()

	_, err := AccuracyByFeature(data, 0, 3)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	_, err = AccuracyByFeature(data, data.Rows(), 3)
	assert.True(t, errors.As(err, &ve))

	_, err = AccuracyByFeature(tensor.MustNew([][]float64{{1}, {2}}), 1, 1)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
