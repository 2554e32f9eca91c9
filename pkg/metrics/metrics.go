package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ToolInvocationsTotal *prometheus.CounterVec
	LLMCallsTotal        *prometheus.CounterVec
	ToolRoundsPerMessage prometheus.Histogram
}

// New registers and returns all collectors for the given service name.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ToolInvocationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "tool_invocations_total",
			Help:        "Tool invocations executed by the orchestrator",
			ConstLabels: labels,
		}, []string{"role", "tool", "outcome"}),

		LLMCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "llm_calls_total",
			Help:        "Calls issued to the language-model collaborator",
			ConstLabels: labels,
		}, []string{"role", "outcome"}),

		ToolRoundsPerMessage: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "tool_rounds_per_message",
			Help:        "Tool-dispatch rounds consumed per inbound message",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 3, 4, 5},
		}),
	}
}

// RecordToolInvocation counts one executed tool call.
func (m *Metrics) RecordToolInvocation(role, tool, outcome string) {
	m.ToolInvocationsTotal.WithLabelValues(role, tool, outcome).Inc()
}

// RecordLLMCall counts one model call.
func (m *Metrics) RecordLLMCall(role, outcome string) {
	m.LLMCallsTotal.WithLabelValues(role, outcome).Inc()
}

// RecordToolRounds observes how many dispatch rounds one message took.
func (m *Metrics) RecordToolRounds(rounds int) {
	m.ToolRoundsPerMessage.Observe(float64(rounds))
}
