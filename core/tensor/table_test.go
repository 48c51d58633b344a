package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]float64
		wantRows int
		wantCols int
		wantErr  error
	}{
		{name: "rectangular", rows: [][]float64{{1, 2}, {3, 4}, {5, 6}}, wantRows: 3, wantCols: 2},
		{name: "single cell", rows: [][]float64{{7}}, wantRows: 1, wantCols: 1},
		{name: "no rows", rows: nil, wantErr: errors.ErrEmptyData},
		{name: "empty first row", rows: [][]float64{{}}, wantErr: errors.ErrEmptyData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tt.rows)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			r, c := tbl.Dims()
			assert.Equal(t, tt.wantRows, r)
			assert.Equal(t, tt.wantCols, c)
		})
	}
}

func TestNew_Ragged(t *testing.T) {
	_, err := New([][]float64{{1, 2}, {3}})
	require.Error(t, err)

	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)
}

func TestNew_CopiesInput(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	tbl := MustNew(rows)
	rows[0][0] = 100

	v, err := tbl.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	row, err := tbl.Row(1)
	require.NoError(t, err)
	row[0] = -1
	v, _ = tbl.At(1, 0)
	assert.Equal(t, 3.0, v)
}

func TestColumnStatistics(t *testing.T) {
	tbl := MustNew([][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	})

	tests := []struct {
		name string
		fn   func(int) (float64, error)
		col  int
		want float64
	}{
		{"min", tbl.ColumnMin, 1, 10},
		{"max", tbl.ColumnMax, 1, 40},
		{"mean", tbl.ColumnMean, 0, 2.5},
		// 母分散: ((1.5)^2 + (0.5)^2 + (0.5)^2 + (1.5)^2) / 4 = 1.25
		{"population variance", tbl.ColumnVariance, 0, 1.25},
		{"constant column variance", tbl.ColumnVariance, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.col)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestColumnStatistics_IndexError(t *testing.T) {
	tbl := MustNew([][]float64{{1, 2}})

	for _, fn := range []func(int) (float64, error){tbl.ColumnMin, tbl.ColumnMax, tbl.ColumnMean, tbl.ColumnVariance} {
		_, err := fn(2)
		var idxErr *errors.IndexError
		require.True(t, errors.As(err, &idxErr))
		assert.Equal(t, 2, idxErr.Index)
		assert.Equal(t, 2, idxErr.Size)

		_, err = fn(-1)
		assert.True(t, errors.As(err, &idxErr))
	}
}

func TestSlice(t *testing.T) {
	tbl := MustNew([][]float64{{0}, {1}, {2}, {3}, {4}})

	s, err := tbl.Slice(1, 3)
	require.NoError(t, err)
	assert.True(t, s.Equal(MustNew([][]float64{{1}, {2}})))

	_, err = tbl.Slice(3, 6)
	var idxErr *errors.IndexError
	assert.True(t, errors.As(err, &idxErr))

	_, err = tbl.Slice(2, 2)
	assert.True(t, errors.As(err, &idxErr))
}

func TestPrependOnes(t *testing.T) {
	tbl := MustNew([][]float64{{2, 3}, {4, 5}})
	got := tbl.PrependOnes()

	assert.True(t, got.Equal(MustNew([][]float64{{1, 2, 3}, {1, 4, 5}})))
	assert.Equal(t, 2, tbl.Cols(), "source table must not change")
}

func TestSplitLabelAndColumns(t *testing.T) {
	tbl := MustNew([][]float64{
		{0.1, 0.2, 0.3, 1},
		{0.4, 0.5, 0.6, 2},
	})

	features, labels, err := tbl.SplitLabel()
	require.NoError(t, err)
	assert.Equal(t, 3, features.Cols())
	assert.True(t, labels.Equal(MustNew([][]float64{{1}, {2}})))

	picked, err := tbl.Columns(2, 3)
	require.NoError(t, err)
	assert.True(t, picked.Equal(MustNew([][]float64{{0.3, 1}, {0.6, 2}})))

	_, err = tbl.Columns(4)
	var idxErr *errors.IndexError
	assert.True(t, errors.As(err, &idxErr))

	_, _, err = MustNew([][]float64{{1}}).SplitLabel()
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestArgmax(t *testing.T) {
	tbl := MustNew([][]float64{
		{0, 1, 0},
		{0.7, 0.2, 0.1},
		{0.3, 0.3, 0.4},
		{0.5, 0.5, 0},
	})
	assert.Equal(t, []int{1, 0, 2, 0}, tbl.Argmax())
}

func TestFromMatrixAndWrap(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	copied, err := FromMatrix(d)
	require.NoError(t, err)
	d.Set(0, 0, 9)
	v, _ := copied.At(0, 0)
	assert.Equal(t, 1.0, v)

	assert.True(t, Wrap(d).Equal(MustNew([][]float64{{9, 2}, {3, 4}})))
}

func TestHasNaNAndEqualApprox(t *testing.T) {
	a := MustNew([][]float64{{1, 2}})
	b := MustNew([][]float64{{1 + 1e-10, 2}})

	assert.False(t, a.Equal(b))
	assert.True(t, a.EqualApprox(b, 1e-9))
	assert.False(t, a.HasNaN())
	assert.True(t, MustNew([][]float64{{math.NaN()}}).HasNaN())
	assert.True(t, Table{}.IsEmpty())
}

func TestRoundedLabel(t *testing.T) {
	assert.Equal(t, 3, RoundedLabel(2.9999999))
	assert.Equal(t, 0, RoundedLabel(0.2))
	assert.Equal(t, 1, RoundedLabel(1))
}
