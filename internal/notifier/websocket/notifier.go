package websocket

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

var _ notifier.Notifier = (*Hub)(nil)

func (h *Hub) MatchUpdated(match *tournament.Match, dryRun bool) error {
	if dryRun {
		log.Info("[Dry Run] Would broadcast match update", "matchID", match.ID)
		return nil
	}
	return h.Broadcast(EventMatchUpdate, match)
}

func (h *Hub) AdvancementsResolved(changes []advancement.Change, dryRun bool) error {
	if len(changes) == 0 {
		return nil
	}
	if dryRun {
		log.Info("[Dry Run] Would broadcast advancements", "count", len(changes))
		return nil
	}
	return h.Broadcast(EventAdvancementResolved, changes)
}

// SnapshotRefreshed sends the full snapshot so clients can redraw.
func (h *Hub) SnapshotRefreshed(snapshot *tournament.Snapshot, reason string, dryRun bool) error {
	if dryRun {
		log.Info("[Dry Run] Would broadcast data refresh", "reason", reason)
		return nil
	}
	return h.Broadcast(EventDataRefresh, snapshot)
}
