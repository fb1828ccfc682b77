package websocket

import "errors"

const channelName = "websocket"

// Event types sent to live-view clients.
const (
	EventMatchUpdate         = "MATCH_UPDATE"
	EventDataRefresh         = "DATA_REFRESH"
	EventAdvancementResolved = "ADVANCEMENT_RESOLVED"
)

var (
	ErrHubStopped = errors.New("websocket hub stopped")
	ErrQueueFull  = errors.New("websocket broadcast queue full")
)

// Message is the JSON frame written to clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
