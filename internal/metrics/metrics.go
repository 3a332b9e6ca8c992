// Package metrics exposes the handful of counters this service's ambient
// instrumentation habit carries, registered against the default Prometheus
// registry and served on /metrics by the rpcstate status server. Metrics
// themselves are glue (out of core scope); the counters exist so the core
// pipeline has somewhere to report into, not as a feature in their own
// right.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	BlocksProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blocks_processed_total",
		Help: "Number of blocks the Block Handler has finished processing.",
	})
	TransactionsFiltered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transactions_filtered_total",
		Help: "Number of transactions that produced at least one filtered message.",
	})
	MessagesSerialized = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_serialized_total",
		Help: "Number of serialized buffers queued for egress, including empty buffers substituted for messages that failed to serialize.",
	})
	MessagesSendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "messages_send_errors_total",
		Help: "Number of egress send attempts that returned an error.",
	})
)

func init() {
	prometheus.MustRegister(BlocksProcessed, TransactionsFiltered, MessagesSerialized, MessagesSendErrors)
}
