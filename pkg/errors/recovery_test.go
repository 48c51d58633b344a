package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRecover_WithPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "LinearRegression.Train")
		panic("test panic message")
	}

	err := run()
	var panicErr *PanicError
	require.True(t, As(err, &panicErr), "got %T", err)
	assert.Equal(t, "LinearRegression.Train", panicErr.Operation)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "gradlearn: panic in LinearRegression.Train: test panic message", err.Error())
	assert.Nil(t, panicErr.Unwrap())
}

// gonum はかけ算の形状不一致で mat.ErrShape をパニックとして投げる
func TestRecover_GonumShapePanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "MatMul")
		a := mat.NewDense(2, 3, nil)
		b := mat.NewDense(2, 3, nil)
		var c mat.Dense
		c.Mul(a, b)
		return nil
	}

	err := run()
	var panicErr *PanicError
	require.True(t, As(err, &panicErr))
	assert.Contains(t, err.Error(), "MatMul")
	assert.True(t, Is(err, mat.ErrShape))
}

func TestRecover_WithoutPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "MatMul")
		return nil
	}
	assert.NoError(t, run())
}

func TestRecover_WithExistingError(t *testing.T) {
	existing := fmt.Errorf("loss failed")

	run := func() (err error) {
		defer Recover(&err, "Softmax")
		err = existing
		panic("panic after error")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in Softmax")
	assert.True(t, Is(err, existing))
}

func BenchmarkRecover_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		func() (err error) {
			defer Recover(&err, "BenchmarkOp")
			return nil
		}()
	}
}
