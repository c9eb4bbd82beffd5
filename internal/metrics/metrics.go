// Package metrics exposes batch classification counters for Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the classification metrics registered on one registry.
type Recorder struct {
	rows      *prometheus.CounterVec
	labels    *prometheus.CounterVec
	unlabeled *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewRecorder registers the metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		rows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mineraliz",
			Name:      "rows_classified_total",
			Help:      "Rows classified, by scheme.",
		}, []string{"scheme"}),
		labels: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mineraliz",
			Name:      "labels_total",
			Help:      "Labels assigned, by scheme and label.",
		}, []string{"scheme", "label"}),
		unlabeled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mineraliz",
			Name:      "unlabeled_total",
			Help:      "Rows left Unknown or unresolved, by scheme.",
		}, []string{"scheme"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mineraliz",
			Name:      "failed_batches_total",
			Help:      "Batches rejected before classification, by scheme.",
		}, []string{"scheme"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mineraliz",
			Name:      "classify_seconds",
			Help:      "Time spent classifying one batch.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"scheme"}),
	}
}

// Observe records one successful batch. unlabeled reports whether a label
// is the scheme's Unknown or unresolved outcome.
func (r *Recorder) Observe(scheme string, counts map[string]int, unlabeled func(string) bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	var total int
	for label, n := range counts {
		total += n
		r.labels.WithLabelValues(scheme, label).Add(float64(n))
		if unlabeled(label) {
			r.unlabeled.WithLabelValues(scheme).Add(float64(n))
		}
	}
	r.rows.WithLabelValues(scheme).Add(float64(total))
	r.duration.WithLabelValues(scheme).Observe(elapsed.Seconds())
}

// Fail records a rejected batch.
func (r *Recorder) Fail(scheme string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(scheme).Inc()
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
