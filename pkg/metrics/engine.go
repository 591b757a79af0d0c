package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records lifecycle transitions and insight evaluations.
type EngineMetrics struct {
	transitions  *prometheus.CounterVec
	ruleFires    *prometheus.CounterVec
	evalDuration prometheus.Histogram
}

// NewEngineMetrics registers the payment engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_transitions_total",
		Help: "Lifecycle transitions by action and outcome.",
	}, []string{"action", "outcome"})
	ruleFires := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_rule_fires_total",
		Help: "Insight rules that fired during evaluation.",
	}, []string{"rule"})
	evalDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_evaluation_duration_seconds",
		Help:    "Duration of a full insight rule pass.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(transitions, ruleFires, evalDuration)
	return &EngineMetrics{
		transitions:  transitions,
		ruleFires:    ruleFires,
		evalDuration: evalDuration,
	}
}

// IncTransition counts a lifecycle action with its outcome ("ok" or "error").
func (e *EngineMetrics) IncTransition(action, outcome string) {
	if e == nil || e.transitions == nil {
		return
	}
	e.transitions.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// IncRuleFire counts an insight rule that produced an insight.
func (e *EngineMetrics) IncRuleFire(rule string) {
	if e == nil || e.ruleFires == nil {
		return
	}
	e.ruleFires.WithLabelValues(normalizeLabel(rule)).Inc()
}

// ObserveEvaluation records the duration of an insight pass.
func (e *EngineMetrics) ObserveEvaluation(duration time.Duration) {
	if e == nil || e.evalDuration == nil {
		return
	}
	e.evalDuration.Observe(duration.Seconds())
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
