package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncUpdatesApplied()
	IncUpdatesFailed()
	AddAdvancements(n int)
	ObserveUpdateDuration(seconds float64)
	SetPendingPlaceholders(n int)
	SetUnmatchedPlaceholders(n int)
	IncNotifSent(channel string)
	IncNotifFailed(channel string)
	SetStartupTime(duration float64)
}
