package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/metrics"
	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	"github.com/slack-go/slack"
)

const channelName = "slack"

// slackClient is the subset of *slack.Client the notifier posts through.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts tournament results and advancements to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	timeout   time.Duration
}

// NewNotifier creates a Notifier authenticated with a bot token.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a Notifier on top of an existing client.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		timeout:   10 * time.Second,
	}
}

// sendMessage posts the blocks of message. In dry run the message is only logged.
func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		payload, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would post to Slack", "channel", s.channelID, "message", string(payload))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, timestamp, err := s.api.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed(channelName)
		log.Error("Slack post failed", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post to %s: %w", s.channelID, err)
	}

	s.metrics.IncNotifSent(channelName)
	log.Debug("Posted to Slack", "channel", s.channelID, "ts", timestamp)
	return nil
}

// MatchUpdated announces completed matches only; score corrections and
// status flips to PLAYING stay off the channel.
func (s *Notifier) MatchUpdated(match *tournament.Match, dryRun bool) error {
	if !match.IsCompleted() {
		return nil
	}
	return s.sendMessage(formatResult(match), dryRun)
}

func (s *Notifier) AdvancementsResolved(changes []advancement.Change, dryRun bool) error {
	if len(changes) == 0 {
		return nil
	}
	return s.sendMessage(formatAdvancements(changes), dryRun)
}

// SnapshotRefreshed only reports resets and restores; advancement refreshes
// are already covered by AdvancementsResolved.
func (s *Notifier) SnapshotRefreshed(snapshot *tournament.Snapshot, reason string, dryRun bool) error {
	if reason == notifier.ReasonAdvancement || reason == notifier.ReasonPlayerRenamed {
		return nil
	}
	return s.sendMessage(formatRefresh(snapshot, reason), dryRun)
}

// SendStandings posts one standings table.
func (s *Notifier) SendStandings(category, group string, table []standings.Entrant, dryRun bool) error {
	return s.sendMessage(formatStandings(category, group, table), dryRun)
}
