package notifier

import (
	"errors"

	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

var _ Notifier = Multi{}

// Multi fans every event out to all of its notifiers. Every notifier is
// called even if an earlier one fails; the errors are joined.
type Multi []Notifier

// NewMulti drops nil entries.
func NewMulti(notifiers ...Notifier) Multi {
	m := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m Multi) MatchUpdated(match *tournament.Match, dryRun bool) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.MatchUpdated(match, dryRun))
	}
	return errors.Join(errs...)
}

func (m Multi) AdvancementsResolved(changes []advancement.Change, dryRun bool) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.AdvancementsResolved(changes, dryRun))
	}
	return errors.Join(errs...)
}

func (m Multi) SnapshotRefreshed(snapshot *tournament.Snapshot, reason string, dryRun bool) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.SnapshotRefreshed(snapshot, reason, dryRun))
	}
	return errors.Join(errs...)
}
