// Package metrics holds the filing feature's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks filing lifecycle counters.
type Metrics struct {
	FilingsStarted   *prometheus.CounterVec
	ValidationsRun   prometheus.Counter
	FindingsObserved prometheus.Counter
	Submissions      *prometheus.CounterVec
	DraftsSaved      prometheus.Counter
	DraftsLoaded     prometheus.Counter
}

// New creates and registers the filing metrics.
func New() *Metrics {
	return &Metrics{
		FilingsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "filing_sessions_started_total",
			Help: "Filing sessions started, by form type",
		}, []string{"form_type"}),
		ValidationsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "filing_validations_total",
			Help: "Validation engine runs",
		}),
		FindingsObserved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "filing_validation_findings_total",
			Help: "Validation findings produced across all runs",
		}),
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "filing_submissions_total",
			Help: "Submission attempts, by outcome",
		}, []string{"outcome"}),
		DraftsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "filing_drafts_saved_total",
			Help: "Drafts saved",
		}),
		DraftsLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "filing_drafts_loaded_total",
			Help: "Drafts loaded",
		}),
	}
}
