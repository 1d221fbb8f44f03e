// Package metrics instruments download runs with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mirrorget"

// Metrics implements orchestrator.Recorder on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Attempts        *prometheus.CounterVec
	Runs            *prometheus.CounterVec
	Bytes           prometheus.Counter
	ActiveDownloads prometheus.Gauge
	AttemptDuration *prometheus.HistogramVec
	RunDuration     prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mirror_attempts_total",
				Help:      "Mirror transfer attempts by result.",
			},
			[]string{"result"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "download_runs_total",
				Help:      "Finished download runs by outcome.",
			},
			[]string{"outcome"},
		),
		Bytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "downloaded_bytes_total",
				Help:      "Bytes written to partial files.",
			},
		),
		ActiveDownloads: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_downloads",
				Help:      "Number of download runs in progress.",
			},
		),
		AttemptDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mirror_attempt_duration_seconds",
				Help:      "Duration of single mirror attempts.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "download_run_duration_seconds",
				Help:      "Duration of whole download runs.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14),
			},
		),
	}
	m.registry.MustRegister(m.Attempts, m.Runs, m.Bytes, m.ActiveDownloads, m.AttemptDuration, m.RunDuration)
	return m
}

// Registry exposes the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RunStarted marks a run as active.
func (m *Metrics) RunStarted() {
	m.ActiveDownloads.Inc()
}

// RunFinished counts a finished run.
func (m *Metrics) RunFinished(outcome string, elapsed time.Duration) {
	m.ActiveDownloads.Dec()
	m.Runs.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(elapsed.Seconds())
}

// AttemptFinished counts one mirror attempt.
func (m *Metrics) AttemptFinished(result string, elapsed time.Duration) {
	m.Attempts.WithLabelValues(result).Inc()
	m.AttemptDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

// BytesTransferred adds n downloaded bytes.
func (m *Metrics) BytesTransferred(n int64) {
	if n > 0 {
		m.Bytes.Add(float64(n))
	}
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
