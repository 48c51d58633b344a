package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

func col(values ...float64) *mat.Dense {
	return mat.NewDense(len(values), 1, values)
}

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     mat.Matrix
		yPred     mat.Matrix
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     col(1.0, 2.0, 3.0, 4.0, 5.0),
			yPred:     col(1.0, 2.0, 3.0, 4.0, 5.0),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     col(1.0, 2.0, 3.0, 4.0),
			yPred:     col(1.5, 2.5, 2.5, 3.5),
			want:      0.25, // (0.25 * 4) / 4
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     col(10.0, 20.0, 30.0),
			yPred:     col(12.0, 18.0, 33.0),
			want:      17.0 / 3.0, // (4 + 4 + 9) / 3
			tolerance: 1e-10,
		},
		{
			name: "multiple columns average every element",
			yTrue: mat.NewDense(2, 2, []float64{
				1.0, 2.0,
				3.0, 4.0,
			}),
			yPred: mat.NewDense(2, 2, []float64{
				1.0, 0.0,
				3.0, 6.0,
			}),
			want:      2.0, // (0 + 4 + 0 + 4) / 4
			tolerance: 1e-10,
		},
		{
			name:    "row mismatch",
			yTrue:   col(1.0, 2.0, 3.0),
			yPred:   col(1.0, 2.0),
			wantErr: true,
		},
		{
			name:    "column mismatch",
			yTrue:   col(1.0, 2.0),
			yPred:   mat.NewDense(2, 2, nil),
			wantErr: true,
		},
		{
			name:    "nil input",
			yTrue:   nil,
			yPred:   col(1.0),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("MSE() = %v, want %v (tolerance: %v)", got, tt.want, tt.tolerance)
				}
			}
		})
	}
}

func TestMSE_DimensionErrorAxis(t *testing.T) {
	_, err := MSE(col(1, 2, 3), col(1, 2))

	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionError, got %v", err)
	}
	if dimErr.Axis != 0 || dimErr.Expected != 3 || dimErr.Got != 2 {
		t.Errorf("unexpected DimensionError %+v", dimErr)
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := col(10.0, 20.0, 30.0)
	yPred := col(12.0, 18.0, 33.0)

	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if want := math.Sqrt(17.0 / 3.0); math.Abs(rmse-want) > 1e-10 {
		t.Errorf("RMSE() = %v, want %v", rmse, want)
	}

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if want := 7.0 / 3.0; math.Abs(mae-want) > 1e-10 {
		t.Errorf("MAE() = %v, want %v", mae, want)
	}

	if _, err := MAE(col(1), col(1, 2)); err == nil {
		t.Error("MAE() expected error on row mismatch")
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     mat.Matrix
		yPred     mat.Matrix
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     col(1.0, 2.0, 3.0, 4.0, 5.0),
			yPred:     col(1.0, 2.0, 3.0, 4.0, 5.0),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "mean baseline",
			yTrue:     col(1.0, 2.0, 3.0, 4.0),
			yPred:     col(2.5, 2.5, 2.5, 2.5),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "worse than mean baseline",
			yTrue:     col(1.0, 2.0, 3.0, 4.0),
			yPred:     col(4.0, 3.0, 2.0, 1.0),
			want:      -3.0, // SSres = 20, SStot = 5
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   col(1.0, 2.0, 3.0),
			yPred:   col(1.0, 2.0),
			wantErr: true,
		},
		{
			name:    "multiple columns",
			yTrue:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			yPred:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if math.Abs(got-tt.want) > tt.tolerance {
					t.Errorf("R2Score() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestR2Score_NoVarianceWarns(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	got, err := R2Score(col(3, 3, 3), col(2, 3, 4))
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if got != 0 {
		t.Errorf("R2Score() = %v, want 0", got)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}

	var w *errors.UndefinedMetricWarning
	if !errors.As(warnings[0], &w) || w.Metric != "R2Score" {
		t.Errorf("unexpected warning %v", warnings[0])
	}
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewDense(size, 1, nil)
	yPred := mat.NewDense(size, 1, nil)

	for i := 0; i < size; i++ {
		yTrue.Set(i, 0, float64(i))
		yPred.Set(i, 0, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
