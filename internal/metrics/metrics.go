// Package metrics holds the prometheus collectors of the exam trainer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pavelanni/schreiben/internal/model"
)

// Check outcomes.
const (
	OutcomeScored   = "scored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeBusy     = "busy"
)

var (
	checks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schreiben",
		Name:      "checks_total",
		Help:      "Grammar check requests by outcome.",
	}, []string{"outcome"})

	scores = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "schreiben",
		Name:      "score_total",
		Help:      "Total score of scored essays.",
		Buckets:   []float64{19, 20, 27, 35, 40, model.MaxTotal},
	})

	issues = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "schreiben",
		Name:      "issues_per_check",
		Help:      "Grammar issues found per successful check.",
		Buckets:   []float64{0, 2, 5, 8, 12, 16, 32},
	})
)

// ObserveCheck counts one check attempt.
func ObserveCheck(outcome string) {
	checks.WithLabelValues(outcome).Inc()
}

// ObserveReport records a produced score report.
func ObserveReport(r model.ScoreReport) {
	checks.WithLabelValues(OutcomeScored).Inc()
	scores.Observe(float64(r.Total))
	issues.Observe(float64(r.IssueCount))
}
