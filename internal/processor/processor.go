package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/activity"
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/metrics"
	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/pubsub"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// New creates a new Processor. pubsub may be nil when publishing is disabled.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, activity activity.Log) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		activity: activity,
	}
}

// UpdateMatch applies upd, recomputes standings, resolves every placeholder
// that can now be filled, and persists the result. In a dry run nothing is
// saved and notifiers only log.
func (p *Processor) UpdateMatch(ctx context.Context, upd MatchUpdate, dryRun bool) (*UpdateResult, error) {
	startTime := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.store.Load(ctx)
	if err != nil {
		p.metrics.IncUpdatesFailed()
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}

	match := snapshot.FindMatch(upd.MatchID)
	if match == nil {
		p.metrics.IncUpdatesFailed()
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, upd.MatchID)
	}
	if err := apply(match, upd); err != nil {
		p.metrics.IncUpdatesFailed()
		return nil, err
	}
	log.Info("Applying match update", "matchID", match.ID, "status", match.Status, "winner", match.WinnerName())

	changes := p.advance(snapshot)

	if !dryRun {
		if err := p.store.Save(ctx, snapshot); err != nil {
			p.metrics.IncUpdatesFailed()
			return nil, fmt.Errorf("failed to save tournament: %w", err)
		}
		p.activity.Record(ctx, activity.ActionMatchUpdate, map[string]any{
			"matchId":  match.ID,
			"status":   match.Status,
			"winner":   match.WinnerName(),
			"advanced": len(changes),
		})
	}

	if err := p.notifier.MatchUpdated(match, dryRun); err != nil {
		log.Error("Failed to notify match update", "error", err, "matchID", match.ID)
	}
	if len(changes) > 0 {
		if err := p.notifier.AdvancementsResolved(changes, dryRun); err != nil {
			log.Error("Failed to notify advancements", "error", err, "count", len(changes))
		}
		if err := p.notifier.SnapshotRefreshed(snapshot, notifier.ReasonAdvancement, dryRun); err != nil {
			log.Error("Failed to notify data refresh", "error", err)
		}
	}
	if !dryRun {
		p.publishUpdate(match, changes)
	}

	p.metrics.IncUpdatesApplied()
	p.metrics.AddAdvancements(len(changes))
	p.metrics.ObserveUpdateDuration(time.Since(startTime).Seconds())
	return &UpdateResult{Match: match, Advanced: changes}, nil
}

func apply(match *tournament.Match, upd MatchUpdate) error {
	if upd.Status.Set {
		if upd.Status.Value == nil {
			return fmt.Errorf("%w: status cannot be null", ErrInvalidUpdate)
		}
		switch *upd.Status.Value {
		case tournament.StatusScheduled, tournament.StatusPlaying, tournament.StatusCompleted:
		default:
			return fmt.Errorf("%w: unknown status %q", ErrInvalidUpdate, *upd.Status.Value)
		}
	}

	if upd.Score.Set {
		match.Score = upd.Score.Value
	}
	if upd.Status.Set {
		match.Status = *upd.Status.Value
	}
	if upd.Winner.Set {
		match.Winner = upd.Winner.Value
	}
	if upd.Player1.Set && upd.Player1.Value != nil {
		match.Player1 = *upd.Player1.Value
	}
	if upd.Player2.Set && upd.Player2.Value != nil {
		match.Player2 = *upd.Player2.Value
	}
	return nil
}

// advance recomputes standings and fills whatever placeholders it can. It
// also refreshes the placeholder gauges.
func (p *Processor) advance(snapshot *tournament.Snapshot) []advancement.Change {
	result := standings.Compute(snapshot.Matches)
	changes := advancement.ResolveWithChanges(snapshot.Matches, result)
	for _, c := range changes {
		log.Info("Advanced player", "matchID", c.MatchID, "slot", c.Position, "placeholder", c.Text, "name", c.Name)
	}

	unmatched := advancement.Unmatched(snapshot.Matches)
	for _, s := range unmatched {
		log.Warn("Placeholder matches no advancement rule", "matchID", s.MatchID, "slot", s.Position, "text", s.Text)
	}
	p.metrics.SetUnmatchedPlaceholders(len(unmatched))
	p.metrics.SetPendingPlaceholders(len(advancement.Pending(snapshot.Matches)))
	return changes
}

func (p *Processor) publishUpdate(match *tournament.Match, changes []advancement.Change) {
	if p.pubsub == nil {
		return
	}
	event := pubsub.MatchUpdatedEvent{
		MatchID:  match.ID,
		Category: match.Category,
		Stage:    match.Stage,
		Player1:  match.Player1,
		Player2:  match.Player2,
		Status:   string(match.Status),
		Winner:   match.WinnerName(),
	}
	if match.Score != nil {
		event.Score = []int{match.Score.P1, match.Score.P2}
	}
	err := p.pubsub.SendMessage(pubsub.EventMatchUpdated, event)
	if err != nil {
		log.Error("Failed to publish match update", "error", err, "matchID", match.ID)
	}
	for _, c := range changes {
		err := p.pubsub.SendMessage(pubsub.EventAdvancementResolved, pubsub.AdvancementResolvedEvent{
			MatchID:     c.MatchID,
			Category:    c.Category,
			Slot:        c.Position,
			Placeholder: c.Text,
			Name:        c.Name,
		})
		if err != nil {
			log.Error("Failed to publish advancement", "error", err, "matchID", c.MatchID)
		}
	}
}

func (p *Processor) publishRefresh(reason string, matches int) {
	if p.pubsub == nil {
		return
	}
	err := p.pubsub.SendMessage(pubsub.EventSnapshotRefreshed, pubsub.SnapshotRefreshedEvent{Reason: reason, Matches: matches})
	if err != nil {
		log.Error("Failed to publish data refresh", "error", err, "reason", reason)
	}
}

// Reset puts every match back to SCHEDULED with a 0-0 score and no winner.
// Slots filled by advancement get their placeholder text back.
func (p *Processor) Reset(ctx context.Context, dryRun bool) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load tournament: %w", err)
	}

	for _, m := range snapshot.Matches {
		m.Score = &tournament.Score{}
		m.Status = tournament.StatusScheduled
		m.Winner = nil
		if m.Player1Placeholder != "" {
			m.Player1, m.Player1Placeholder = m.Player1Placeholder, ""
		}
		if m.Player2Placeholder != "" {
			m.Player2, m.Player2Placeholder = m.Player2Placeholder, ""
		}
	}
	total := len(snapshot.Matches)
	log.Info("Resetting all match results", "matches", total, "dryRun", dryRun)

	if !dryRun {
		if err := p.store.Save(ctx, snapshot); err != nil {
			return 0, fmt.Errorf("failed to save tournament: %w", err)
		}
		p.activity.Record(ctx, activity.ActionMasterReset, map[string]any{
			"totalMatchesReset": total,
			"action":            "Reset all match results to scheduled state",
		})
	}
	p.metrics.SetPendingPlaceholders(len(advancement.Pending(snapshot.Matches)))

	if err := p.notifier.SnapshotRefreshed(snapshot, notifier.ReasonReset, dryRun); err != nil {
		log.Error("Failed to notify reset", "error", err)
	}
	if !dryRun {
		p.publishRefresh(notifier.ReasonReset, total)
	}
	return total, nil
}

// Restore replaces the whole tournament with snapshot.
func (p *Processor) Restore(ctx context.Context, snapshot *tournament.Snapshot, dryRun bool) (RestoreStats, error) {
	if err := Validate(snapshot); err != nil {
		return RestoreStats{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	stats := RestoreStats{
		Players:    len(snapshot.Players),
		Matches:    len(snapshot.Matches),
		Categories: len(snapshot.Categories),
		Courts:     len(snapshot.Courts),
	}
	log.Info("Restoring tournament from backup", "players", stats.Players, "matches", stats.Matches, "dryRun", dryRun)

	if !dryRun {
		if err := p.store.Save(ctx, snapshot); err != nil {
			return RestoreStats{}, fmt.Errorf("failed to save tournament: %w", err)
		}
		p.activity.Record(ctx, activity.ActionRestore, map[string]any{
			"players":    stats.Players,
			"matches":    stats.Matches,
			"categories": stats.Categories,
			"courts":     stats.Courts,
		})
	}
	p.metrics.SetPendingPlaceholders(len(advancement.Pending(snapshot.Matches)))
	p.metrics.SetUnmatchedPlaceholders(len(advancement.Unmatched(snapshot.Matches)))

	if err := p.notifier.SnapshotRefreshed(snapshot, notifier.ReasonRestore, dryRun); err != nil {
		log.Error("Failed to notify restore", "error", err)
	}
	if !dryRun {
		p.publishRefresh(notifier.ReasonRestore, stats.Matches)
	}
	return stats, nil
}

// Validate checks that a snapshot carries every required collection and
// that every match has an id.
func Validate(snapshot *tournament.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: empty", ErrInvalidSnapshot)
	}
	if snapshot.Players == nil || snapshot.Matches == nil || snapshot.Categories == nil || snapshot.Courts == nil {
		return fmt.Errorf("%w: missing required fields (players, matches, categories, courts)", ErrInvalidSnapshot)
	}
	seen := make(map[string]bool, len(snapshot.Matches))
	for i, m := range snapshot.Matches {
		if m == nil || m.ID == "" {
			return fmt.Errorf("%w: match %d has no id", ErrInvalidSnapshot, i)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate match id %s", ErrInvalidSnapshot, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// UpdatePlayer renames a registered player. Scheduled matches keep the
// names they were drawn with.
func (p *Processor) UpdatePlayer(ctx context.Context, playerID, name string, dryRun bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tournament: %w", err)
	}

	var player *tournament.Player
	for i := range snapshot.Players {
		if snapshot.Players[i].ID == playerID {
			player = &snapshot.Players[i]
			break
		}
	}
	if player == nil {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	log.Info("Renaming player", "playerID", playerID, "from", player.Name, "to", name)
	player.Name = name

	if !dryRun {
		if err := p.store.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save tournament: %w", err)
		}
	}
	if err := p.notifier.SnapshotRefreshed(snapshot, notifier.ReasonPlayerRenamed, dryRun); err != nil {
		log.Error("Failed to notify player rename", "error", err)
	}
	return nil
}

// Snapshot returns the stored tournament.
func (p *Processor) Snapshot(ctx context.Context) (*tournament.Snapshot, error) {
	return p.store.Load(ctx)
}

// Backup returns the stored tournament and records the download.
func (p *Processor) Backup(ctx context.Context) (*tournament.Snapshot, error) {
	snapshot, err := p.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	p.activity.Record(ctx, activity.ActionBackup, map[string]any{"matches": len(snapshot.Matches)})
	return snapshot, nil
}

// Standings computes the current league tables.
func (p *Processor) Standings(ctx context.Context) (standings.Result, error) {
	snapshot, err := p.store.Load(ctx)
	if err != nil {
		return standings.Result{}, err
	}
	return standings.Compute(snapshot.Matches), nil
}

// AdvancementInfo explains where each side of a match came from.
func (p *Processor) AdvancementInfo(ctx context.Context, matchID string) (advancement.Info, error) {
	snapshot, err := p.store.Load(ctx)
	if err != nil {
		return advancement.Info{}, err
	}
	match := snapshot.FindMatch(matchID)
	if match == nil {
		return advancement.Info{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return advancement.Explain(match, snapshot.Matches, standings.Compute(snapshot.Matches)), nil
}

// ActivityLog returns the most recent administrative actions.
func (p *Processor) ActivityLog(ctx context.Context, limit int) ([]activity.Entry, error) {
	return p.activity.List(ctx, limit)
}
