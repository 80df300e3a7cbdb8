package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

func NewPrometheusRecorder() Recorder {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletlink",
			Name:      "events_total",
			Help:      "wallet operation counters",
		},
		[]string{"type", "wallet", "chain"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletlink",
			Name:      "latency_seconds",
			Help:      "wallet operation latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "wallet", "chain"},
	)

	prometheus.MustRegister(counters, histogram)

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"type":   name,
		"wallet": labels["wallet"],
		"chain":  labels["chain"],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
		"wallet":    labels["wallet"],
		"chain":     labels["chain"],
	}).Observe(d.Seconds())
}
