package http

import (
	"net/http"

	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/processor"
	"github.com/mauv0809/shuttle-bracket/internal/pubsub"
)

// NewServer wires the routes. liveHandler serves websocket clients. relay,
// announcer and pubsub are optional.
func NewServer(proc *processor.Processor, metricsHandler http.Handler, liveHandler http.Handler, relay notifier.Notifier, announcer Announcer, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Processor:      proc,
		MetricsHandler: metricsHandler,
		LiveHandler:    liveHandler,
		Relay:          relay,
		Announcer:      announcer,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	if s.MetricsHandler != nil {
		s.Router.Handle("/metrics", s.MetricsHandler)
	}
	if s.LiveHandler != nil {
		s.Router.Handle("/ws", s.LiveHandler)
	}
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/data", Chain(s.DataHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/standings/announce", Chain(s.AnnounceStandingsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/matches/update", Chain(s.UpdateMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/matches/{id}/advancement-info", Chain(s.AdvancementInfoHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/players/update", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/admin/reset", Chain(s.ResetHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/admin/activity-logs", Chain(s.ActivityLogHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/backup/download", Chain(s.BackupDownloadHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/backup/upload", Chain(s.BackupUploadHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-updated", Chain(s.MatchUpdatedPushHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/advancement-resolved", Chain(s.AdvancementResolvedPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
