package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusObserver_ObserveEpoch(t *testing.T) {
	obs := NewPrometheusObserver("gradlearn")
	reg := prometheus.NewRegistry()
	require.NoError(t, obs.Register(reg))

	obs.ObserveEpoch(Epoch{Model: "LinearRegression", EstimatorID: "a", Epoch: 1, Loss: 4, LearningRate: 0.1})
	obs.ObserveEpoch(Epoch{Model: "LinearRegression", EstimatorID: "a", Epoch: 2, Loss: 3, LearningRate: 0.105})
	obs.ObserveEpoch(Epoch{Model: "LogisticRegression", EstimatorID: "b", Epoch: 1, Loss: 0.6, LearningRate: 0.5})

	assert.Equal(t, 2.0, testutil.ToFloat64(obs.Epochs.WithLabelValues("LinearRegression", "a")))
	assert.Equal(t, 3.0, testutil.ToFloat64(obs.Loss.WithLabelValues("LinearRegression", "a")))
	assert.Equal(t, 0.105, testutil.ToFloat64(obs.LearningRate.WithLabelValues("LinearRegression", "a")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.Epochs.WithLabelValues("LogisticRegression", "b")))
	assert.Equal(t, 2, testutil.CollectAndCount(obs.Loss))
}

func TestPrometheusObserver_RegisterTwiceFails(t *testing.T) {
	obs := NewPrometheusObserver("gradlearn")
	reg := prometheus.NewRegistry()
	require.NoError(t, obs.Register(reg))
	assert.Error(t, obs.Register(reg))
}

func TestNopObserver(t *testing.T) {
	var o Observer = NopObserver{}
	assert.NotPanics(t, func() { o.ObserveEpoch(Epoch{Epoch: 1}) })
}
