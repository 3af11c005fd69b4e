package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "resume_ranker"

// Metrics collects batch counters on a private registry. All methods are
// safe on a nil *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	processed          prometheus.Counter
	parseFailures      prometheus.Counter
	extractionFailures *prometheus.CounterVec
	scoringFailures    prometheus.Counter
	finalScores        prometheus.Histogram
	stageDuration      *prometheus.HistogramVec
}

// NewMetrics registers the ranker's collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "candidates_processed_total",
			Help:      "Resumes that reached the ranked output.",
		}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "parse_failures_total",
			Help:      "Resume files that could not be read or were too short.",
		}),
		extractionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "extraction_failures_total",
			Help:      "Extractions that fell back to an empty record, by reason.",
		}, []string{"reason"}),
		scoringFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scoring_failures_total",
			Help:      "Candidates that received the fallback score.",
		}),
		finalScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "final_score",
			Help:      "Distribution of final candidate scores.",
			Buckets:   prometheus.LinearBuckets(20, 20, 5),
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.processed,
		m.parseFailures,
		m.extractionFailures,
		m.scoringFailures,
		m.finalScores,
		m.stageDuration,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// IncProcessed counts a candidate that was ranked.
func (m *Metrics) IncProcessed() {
	if m != nil {
		m.processed.Inc()
	}
}

// IncParseFailure counts a resume that could not be read.
func (m *Metrics) IncParseFailure() {
	if m != nil {
		m.parseFailures.Inc()
	}
}

// IncExtractionFailure counts an extraction that fell back, labelled by reason.
func (m *Metrics) IncExtractionFailure(reason string) {
	if m != nil {
		m.extractionFailures.WithLabelValues(reason).Inc()
	}
}

// IncScoringFailure counts a candidate that could not be scored.
func (m *Metrics) IncScoringFailure() {
	if m != nil {
		m.scoringFailures.Inc()
	}
}

// ObserveFinalScore records a candidate's final score.
func (m *Metrics) ObserveFinalScore(score float64) {
	if m != nil {
		m.finalScores.Observe(score)
	}
}

// ObserveStage records how long stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
