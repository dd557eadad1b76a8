package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rm_assessments_total",
			Help: "Total number of deal assessments by readiness status",
		},
		[]string{"status"},
	)

	GuardrailRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rm_guardrail_rejections_total",
			Help: "Total number of requests rejected by the sensitive-data guardrail",
		},
		[]string{"route"},
	)

	EnhancementCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rm_enhancement_calls_total",
			Help: "Total number of narrative enhancement attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)
)
