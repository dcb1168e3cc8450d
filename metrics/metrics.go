// Package metrics exposes prometheus instrumentation for the analysis
// pipelines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analyses per modality.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentira_analyses_total",
		Help: "Total number of completed emotion analyses by modality.",
	}, []string{"modality"})

	// ClassifierFailures counts classifier invocations that returned an
	// error, per provider.
	ClassifierFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentira_classifier_failures_total",
		Help: "Total number of failed classifier invocations by provider.",
	}, []string{"provider"})

	// RiskScores observes the distribution of produced risk scores.
	RiskScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentira_risk_score",
		Help:    "Distribution of risk scores on the 0-100 scale.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	// WellnessScores observes the distribution of produced wellness scores.
	WellnessScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentira_wellness_score",
		Help:    "Distribution of wellness scores on the 0-100 scale.",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	// ActiveRealtimeSessions tracks currently open websocket sessions.
	ActiveRealtimeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentira_active_realtime_sessions",
		Help: "Number of currently active realtime analysis sessions.",
	})
)

// ObserveResult records the score histograms and the per-modality counter
// for one completed analysis.
func ObserveResult(modality string, wellness, risk float64) {
	AnalysesTotal.WithLabelValues(modality).Inc()
	WellnessScores.Observe(wellness)
	RiskScores.Observe(risk)
}
