// Package metrics provides Prometheus metrics for parsing and imports.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsParsed counts parsed decisions.
	// Labels: ruling (ADMITTED, PARTIALLY_ADMITTED, REJECTED, UNKNOWN, none)
	DecisionsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expertap",
			Subsystem: "parser",
			Name:      "decisions_total",
			Help:      "Total number of decisions parsed, by ruling",
		},
		[]string{"ruling"},
	)

	// ParseWarnings counts warnings attached to parsed decisions.
	ParseWarnings = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "expertap",
			Subsystem: "parser",
			Name:      "warnings_total",
			Help:      "Total number of parse warnings emitted",
		},
	)

	// ParseDuration tracks how long a single parse takes.
	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "expertap",
			Subsystem: "parser",
			Name:      "duration_seconds",
			Help:      "Duration of decision parsing in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
		},
	)

	// ImportDocuments counts documents handled by batch imports.
	// Labels: result (imported, already_existed, failed)
	ImportDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expertap",
			Subsystem: "import",
			Name:      "documents_total",
			Help:      "Total number of documents handled by batch imports, by result",
		},
		[]string{"result"},
	)
)

// ObserveParse records one parse result.
func ObserveParse(ruling string, warnings int, took time.Duration) {
	if ruling == "" {
		ruling = "none"
	}
	DecisionsParsed.WithLabelValues(ruling).Inc()
	ParseWarnings.Add(float64(warnings))
	ParseDuration.Observe(took.Seconds())
}
