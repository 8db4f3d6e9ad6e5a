package metrics

import "github.com/prometheus/client_golang/prometheus"

// Chat pipeline Prometheus metrics.
var (
	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripchat",
			Name:      "chat_requests_total",
			Help:      "Total chat requests by classified intent and outcome",
		},
		[]string{"intent", "status"}, // status: "done" / "error" / "cancelled"
	)

	ChatChunksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tripchat",
			Name:      "chat_chunks_total",
			Help:      "Total streamed text chunks",
		},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripchat",
			Name:      "chat_generation_duration_seconds",
			Help:      "Streaming generation duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"intent"},
	)

	RetrievalCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripchat",
			Name:      "retrieval_candidates_total",
			Help:      "Total candidates scored during retrieval",
		},
		[]string{"domain"},
	)

	VariantFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripchat",
			Name:      "retrieval_variant_failures_total",
			Help:      "Query variants skipped due to embedding or search failures",
		},
		[]string{"domain"},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripchat",
			Name:      "completion_requests_total",
			Help:      "Total streaming completion requests",
		},
		[]string{"model", "status"},
	)

	PersistFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tripchat",
			Name:      "chat_persist_failures_total",
			Help:      "Conversation rows lost after a successfully streamed answer",
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers chat pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ChatRequestsTotal)
	prometheus.MustRegister(ChatChunksTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(RetrievalCandidatesTotal)
	prometheus.MustRegister(VariantFailuresTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(PersistFailuresTotal)
	pipelineMetricsRegistered = true
}
