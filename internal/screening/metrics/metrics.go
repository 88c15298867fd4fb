package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening module.
type Metrics struct {
	// Full pipeline latency per entity (NLP call included).
	ScoreLatency prometheus.Histogram

	// Scoring outcomes by status and risk level.
	Outcomes *prometheus.CounterVec

	// Collaborator call latencies by stage ("nlp", "resolution").
	CollaboratorLatency *prometheus.HistogramVec

	// Store write conflicts (duplicate entityId/asOfTs).
	WriteConflicts prometheus.Counter

	// Entities that failed scoring inside a batch.
	BatchFailures prometheus.Counter
}

// New creates a Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		ScoreLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_screening_score_duration_seconds",
			Help:    "Duration of full risk scoring per entity including collaborator calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_screening_outcomes_total",
			Help: "Total scoring outcomes by status and risk level",
		}, []string{"status", "risk_level"}),

		CollaboratorLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aegis_screening_collaborator_duration_seconds",
			Help:    "Duration of collaborator calls by stage",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"stage"}),

		WriteConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_screening_write_conflicts_total",
			Help: "Total profile writes rejected for duplicate (entityId, asOfTs)",
		}),

		BatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aegis_screening_batch_failures_total",
			Help: "Total entities that failed scoring within a batch run",
		}),
	}
}

// ObserveScoreLatency records the duration of one full scoring run.
func (m *Metrics) ObserveScoreLatency(d time.Duration) {
	if m != nil {
		m.ScoreLatency.Observe(d.Seconds())
	}
}

// IncrementOutcome records a scoring outcome.
func (m *Metrics) IncrementOutcome(status, level string) {
	if m != nil {
		m.Outcomes.WithLabelValues(status, level).Inc()
	}
}

// ObserveCollaboratorLatency records one collaborator call by stage.
func (m *Metrics) ObserveCollaboratorLatency(stage string, d time.Duration) {
	if m != nil {
		m.CollaboratorLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementWriteConflict records a rejected duplicate write.
func (m *Metrics) IncrementWriteConflict() {
	if m != nil {
		m.WriteConflicts.Inc()
	}
}

// IncrementBatchFailure records a per-entity failure inside a batch.
func (m *Metrics) IncrementBatchFailure() {
	if m != nil {
		m.BatchFailures.Inc()
	}
}
