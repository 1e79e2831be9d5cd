package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncHTTPRequests()
	ObserveRequestDuration(duration float64)
	IncPlayersRegistered()
	AddMembersSynced(count int)
	IncBotCallsSent()
	IncBotCallsFailed()
	SetStartupTime(duration float64)
}
