package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

func TestOneHot(t *testing.T) {
	got, err := OneHot([]int{1, 0, 2}, 3)
	require.NoError(t, err)

	want := tensor.MustNew([][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 1},
	})
	assert.True(t, got.Equal(want))
	assert.Equal(t, []int{1, 0, 2}, got.Argmax())
}

func TestOneHot_Errors(t *testing.T) {
	_, err := OneHot(nil, 3)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = OneHot([]int{0, 3}, 3)
	var ie *errors.IndexError
	assert.True(t, errors.As(err, &ie))

	_, err = OneHot([]int{0}, 1)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestFlatten(t *testing.T) {
	images := [][][]float64{
		{{0, 1}, {2, 3}},
		{{4, 5}, {6, 7}},
	}
	got, err := Flatten(images)
	require.NoError(t, err)
	assert.True(t, got.Equal(tensor.MustNew([][]float64{{0, 1, 2, 3}, {4, 5, 6, 7}})))

	_, err = Flatten([][][]float64{{{0, 1}}, {{0, 1, 2}}})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
