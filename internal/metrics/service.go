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
		HTTPRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_http_requests_total",
			Help: "The total number of HTTP requests handled by the API server.",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_http_request_duration_seconds",
			Help:    "The duration of individual HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_players_registered_total",
			Help: "The total number of player registration upserts.",
		}),
		MembersSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_chat_members_synced_total",
			Help: "The total number of chat member entries processed by sync.",
		}),
		BotCallsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bot_api_calls_sent_total",
			Help: "The total number of backend API calls successfully made by the bot.",
		}),
		BotCallsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bot_api_calls_failed_total",
			Help: "The total number of backend API calls that failed.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.HTTPRequests,
		s.RequestDuration,
		s.PlayersRegistered,
		s.MembersSynced,
		s.BotCallsSent,
		s.BotCallsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncHTTPRequests() {
	s.HTTPRequests.Inc()
}

func (s *Service) ObserveRequestDuration(duration float64) {
	s.RequestDuration.Observe(duration)
}

func (s *Service) IncPlayersRegistered() {
	s.PlayersRegistered.Inc()
}

func (s *Service) AddMembersSynced(count int) {
	s.MembersSynced.Add(float64(count))
}

func (s *Service) IncBotCallsSent() {
	s.BotCallsSent.Inc()
}

func (s *Service) IncBotCallsFailed() {
	s.BotCallsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
