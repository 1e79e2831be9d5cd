package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	HTTPRequests       prometheus.Counter
	RequestDuration    prometheus.Histogram
	PlayersRegistered  prometheus.Counter
	MembersSynced      prometheus.Counter
	BotCallsSent       prometheus.Counter
	BotCallsFailed     prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
