// Package telemetry exports per-epoch training progress.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Epoch describes one finished training epoch.
type Epoch struct {
	Model        string
	EstimatorID  string
	Epoch        int
	Loss         float64
	LearningRate float64
}

// Observer receives an Epoch after every training epoch.
type Observer interface {
	ObserveEpoch(e Epoch)
}

// NopObserver discards every epoch.
type NopObserver struct{}

// ObserveEpoch implements Observer.
func (NopObserver) ObserveEpoch(Epoch) {}

// PrometheusObserver records epochs, loss and learning rate per model instance.
type PrometheusObserver struct {
	Epochs       *prometheus.CounterVec
	Loss         *prometheus.GaugeVec
	LearningRate *prometheus.GaugeVec
}

// NewPrometheusObserver creates the collectors under namespace.
// Call Register to expose them.
func NewPrometheusObserver(namespace string) *PrometheusObserver {
	labels := []string{"model", "estimator"}
	return &PrometheusObserver{
		Epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "training_epochs_total",
				Help:      "Number of finished gradient-descent epochs.",
			}, labels),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "training_loss",
				Help:      "Loss recorded after the latest epoch.",
			}, labels),
		LearningRate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "training_learning_rate",
				Help:      "Learning rate after the latest adjustment.",
			}, labels),
	}
}

// Register registers every collector with reg.
func (p *PrometheusObserver) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{p.Epochs, p.Loss, p.LearningRate} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveEpoch implements Observer.
func (p *PrometheusObserver) ObserveEpoch(e Epoch) {
	p.Epochs.WithLabelValues(e.Model, e.EstimatorID).Inc()
	p.Loss.WithLabelValues(e.Model, e.EstimatorID).Set(e.Loss)
	p.LearningRate.WithLabelValues(e.Model, e.EstimatorID).Set(e.LearningRate)
}
