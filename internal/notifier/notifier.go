package notifier

import (
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Notifier defines a high-level interface for announcing tournament events.
// This decouples the processor from the delivery channel (websocket clients, Slack).
type Notifier interface {
	// After a match update has been persisted
	MatchUpdated(match *tournament.Match, dryRun bool) error
	// After placeholder slots were filled with real names
	AdvancementsResolved(changes []advancement.Change, dryRun bool) error
	// After the whole snapshot changed (reset, restore, player rename, advancement)
	SnapshotRefreshed(snapshot *tournament.Snapshot, reason string, dryRun bool) error
}

// Reasons passed to SnapshotRefreshed.
const (
	ReasonAdvancement   = "advancement"
	ReasonReset         = "reset"
	ReasonRestore       = "restore"
	ReasonPlayerRenamed = "player-renamed"
)
