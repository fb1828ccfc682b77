package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		UpdatesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "badminton_match_updates_total",
			Help: "The total number of match updates applied.",
		}),
		UpdatesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "badminton_match_updates_failed_total",
			Help: "The total number of match updates that could not be applied.",
		}),
		AdvancementsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "badminton_advancements_resolved_total",
			Help: "The total number of placeholder slots replaced by an entrant.",
		}),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "badminton_update_cycle_duration_seconds",
			Help:    "The duration of a load, resolve and save cycle.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		PendingPlaceholders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "badminton_pending_placeholders",
			Help: "Scheduled slots still waiting for their qualifier.",
		}),
		UnmatchedPlaceholders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "badminton_unmatched_placeholders",
			Help: "Scheduled slots that look like placeholders but match no advancement rule.",
		}),
		NotifSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}, []string{"channel"}),
		NotifFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}, []string{"channel"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "badminton_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.UpdatesApplied,
		s.UpdatesFailed,
		s.AdvancementsResolved,
		s.UpdateDuration,
		s.PendingPlaceholders,
		s.UnmatchedPlaceholders,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncUpdatesApplied() {
	s.UpdatesApplied.Inc()
}

func (s *Service) IncUpdatesFailed() {
	s.UpdatesFailed.Inc()
}

func (s *Service) AddAdvancements(n int) {
	s.AdvancementsResolved.Add(float64(n))
}

func (s *Service) ObserveUpdateDuration(seconds float64) {
	s.UpdateDuration.Observe(seconds)
}

func (s *Service) SetPendingPlaceholders(n int) {
	s.PendingPlaceholders.Set(float64(n))
}

func (s *Service) SetUnmatchedPlaceholders(n int) {
	s.UnmatchedPlaceholders.Set(float64(n))
}

func (s *Service) IncNotifSent(channel string) {
	s.NotifSent.WithLabelValues(channel).Inc()
}

func (s *Service) IncNotifFailed(channel string) {
	s.NotifFailed.WithLabelValues(channel).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
