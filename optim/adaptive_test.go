package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gradlearn/metrics"
)

func TestAdaptiveRate_Adjust(t *testing.T) {
	tests := []struct {
		name    string
		history metrics.History
		want    float64
	}{
		{name: "empty history", history: nil, want: 0.1},
		{name: "single value", history: metrics.History{3}, want: 0.1},
		{name: "loss increased halves", history: metrics.History{5, 3, 4}, want: 0.05},
		{name: "loss decreased grows", history: metrics.History{2, 3}, want: 0.105},
		{name: "equal loss grows", history: metrics.History{3, 3}, want: 0.105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdaptiveRate(0.1)
			got := a.Adjust(tt.history)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.InDelta(t, tt.want, a.Rate(), 1e-12)
		})
	}
}

func TestAdaptiveRate_Sequence(t *testing.T) {
	a := NewAdaptiveRate(1)
	var h metrics.History

	for _, loss := range []float64{5, 3, 4} {
		h.Push(loss)
		a.Adjust(h)
	}
	require.Equal(t, metrics.History{4, 3, 5}, h)
	// 5 -> 3: ×1.05, 3 -> 4: ×0.5
	assert.InDelta(t, 1.05*0.5, a.Rate(), 1e-12)

	h.Push(3.5)
	a.Adjust(h)
	assert.InDelta(t, 1.05*0.5*1.05, a.Rate(), 1e-12)
}
