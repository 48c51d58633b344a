package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

func TestStandardScaler_Fit(t *testing.T) {
	X := tensor.MustNew([][]float64{
		{1, 10},
		{2, 20},
		{3, 30},
		{4, 40},
	})

	scaler := NewStandardScaler()
	require.NoError(t, scaler.Fit(X))

	assert.InDeltaSlice(t, []float64{2.5, 25}, scaler.Mean, 1e-12)
	assert.InDeltaSlice(t, []float64{1.25, 125}, scaler.Variance, 1e-12)
	assert.True(t, scaler.IsFitted())
	assert.Equal(t, "StandardScaler(n_features=2)", scaler.String())
}

func TestStandardScaler_TransformHasZeroMeanUnitVariance(t *testing.T) {
	X := tensor.MustNew([][]float64{{2, -1}, {4, 0}, {6, 1}, {8, 6}})

	scaled, err := NewStandardScaler().FitTransform(X)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		mean, err := scaled.ColumnMean(j)
		require.NoError(t, err)
		variance, err := scaled.ColumnVariance(j)
		require.NoError(t, err)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, variance, 1e-12)
	}
}

func TestStandardScaler_ZeroVarianceColumn(t *testing.T) {
	X := tensor.MustNew([][]float64{{5, 1}, {5, 2}, {5, 3}})

	scaled, err := NewStandardScaler().FitTransform(X)
	require.NoError(t, err)

	col, err := scaled.Col(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, col)
	assert.False(t, scaled.HasNaN())
}

func TestStandardScaler_RoundTrip(t *testing.T) {
	X := tensor.MustNew([][]float64{
		{0.5, 100, -3},
		{1.5, 250, 0},
		{-2, 175, 9},
		{3.25, 50, 4},
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	restored, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, restored.EqualApprox(X, 1e-9))
}

func TestStandardScaler_Errors(t *testing.T) {
	scaler := NewStandardScaler()
	X := tensor.MustNew([][]float64{{1, 2}, {3, 4}})

	_, err := scaler.Transform(X)
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	require.NoError(t, scaler.Fit(X))
	_, err = scaler.Transform(tensor.MustNew([][]float64{{1, 2, 3}}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	err = NewStandardScaler().Fit(tensor.Table{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestStandardScaler_ParallelTransformMatchesSequential(t *testing.T) {
	rows := make([][]float64, 2500)
	for i := range rows {
		rows[i] = []float64{float64(i), math.Sin(float64(i))}
	}
	X := tensor.MustNew(rows)

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	for _, i := range []int{0, 999, 1000, 2499} {
		got, err := scaled.At(i, 0)
		require.NoError(t, err)
		want := (float64(i) - scaler.Mean[0]) / math.Sqrt(scaler.Variance[0])
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestMinMaxScaler(t *testing.T) {
	tests := []struct {
		name         string
		featureRange [2]float64
		X            [][]float64
		want         [][]float64
	}{
		{
			name:         "unit range",
			featureRange: [2]float64{0, 1},
			X:            [][]float64{{0, 10}, {5, 20}, {10, 30}},
			want:         [][]float64{{0, 0}, {0.5, 0.5}, {1, 1}},
		},
		{
			name:         "custom range",
			featureRange: [2]float64{-1, 1},
			X:            [][]float64{{0}, {5}, {10}},
			want:         [][]float64{{-1}, {0}, {1}},
		},
		{
			name:         "constant column maps to lower bound",
			featureRange: [2]float64{0, 1},
			X:            [][]float64{{7, 1}, {7, 3}},
			want:         [][]float64{{0, 0}, {0, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scaler := NewMinMaxScaler(tt.featureRange)
			got, err := scaler.FitTransform(tensor.MustNew(tt.X))
			require.NoError(t, err)
			assert.True(t, got.EqualApprox(tensor.MustNew(tt.want), 1e-12), "got %v", got)

			restored, err := scaler.InverseTransform(got)
			require.NoError(t, err)
			assert.True(t, restored.EqualApprox(tensor.MustNew(tt.X), 1e-9))
		})
	}
}

func TestMinMaxScaler_InvalidRange(t *testing.T) {
	err := NewMinMaxScaler([2]float64{1, 1}).Fit(tensor.MustNew([][]float64{{1}}))
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestNormalizeFeatures_KeepsLabel(t *testing.T) {
	data := tensor.MustNew([][]float64{
		{0, 100, 3},
		{10, 200, 1},
		{5, 150, 2},
	})

	got, err := NormalizeFeatures(data)
	require.NoError(t, err)

	want := tensor.MustNew([][]float64{
		{0, 0, 3},
		{1, 1, 1},
		{0.5, 0.5, 2},
	})
	assert.True(t, got.EqualApprox(want, 1e-12))

	_, err = NormalizeFeatures(tensor.MustNew([][]float64{{1}}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestNormalize_AllColumns(t *testing.T) {
	got, err := Normalize(tensor.MustNew([][]float64{{2, 4}, {4, 8}}))
	require.NoError(t, err)
	assert.True(t, got.Equal(tensor.MustNew([][]float64{{0, 0}, {1, 1}})))
}
