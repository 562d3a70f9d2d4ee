package metrics

import "github.com/prometheus/client_golang/prometheus"

// Assistant and tool Prometheus metrics.
var (
	AssistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staylens",
			Name:      "assistant_requests_total",
			Help:      "Total number of chat model completion requests",
		},
		[]string{"model", "status"},
	)

	AssistantRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "staylens",
			Name:      "assistant_request_duration_seconds",
			Help:      "Chat model completion duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	AssistantTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staylens",
			Name:      "assistant_tokens_total",
			Help:      "Total chat model tokens consumed",
		},
		[]string{"model", "type"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staylens",
			Name:      "tool_calls_total",
			Help:      "Total tool executions within agent runs",
		},
		[]string{"tool", "status"},
	)

	ChatRoundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staylens",
			Name:      "chat_rounds_total",
			Help:      "Total completed chat rounds",
		},
		[]string{"outcome"}, // "answered" / "loop_exceeded" / "failed"
	)
)

var assistantMetricsRegistered bool

// RegisterAssistantMetrics registers assistant metrics. Must be called once from main.
func RegisterAssistantMetrics() {
	if assistantMetricsRegistered {
		return
	}
	prometheus.MustRegister(AssistantRequestsTotal)
	prometheus.MustRegister(AssistantRequestDuration)
	prometheus.MustRegister(AssistantTokensTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ChatRoundsTotal)
	assistantMetricsRegistered = true
}
