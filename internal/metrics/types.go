package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	UpdatesApplied        prometheus.Counter
	UpdatesFailed         prometheus.Counter
	AdvancementsResolved  prometheus.Counter
	UpdateDuration        prometheus.Histogram
	PendingPlaceholders   prometheus.Gauge
	UnmatchedPlaceholders prometheus.Gauge
	NotifSent             *prometheus.CounterVec
	NotifFailed           *prometheus.CounterVec
	StartupTimeSeconds    prometheus.Gauge
}
