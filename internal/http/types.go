package http

import (
	"net/http"

	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/processor"
	"github.com/mauv0809/shuttle-bracket/internal/pubsub"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
)

// Announcer posts a standings table to a team channel.
type Announcer interface {
	SendStandings(category, group string, table []standings.Entrant, dryRun bool) error
}

type Server struct {
	Processor      *processor.Processor
	MetricsHandler http.Handler
	LiveHandler    http.Handler
	Relay          notifier.Notifier
	Announcer      Announcer
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
}

type updateResponse struct {
	Success bool `json:"success"`
	processor.UpdateResult
}

type playerUpdateRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stats   any    `json:"stats,omitempty"`
}

type categoryStandings struct {
	Category string                         `json:"category"`
	Groups   map[string][]standings.Entrant `json:"groups"`
	Overall  []standings.Entrant            `json:"overall"`
}

// pushRequest is the body Google Pub/Sub posts to push endpoints.
type pushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"` // base64-encoded message payload
	} `json:"message"`
}
