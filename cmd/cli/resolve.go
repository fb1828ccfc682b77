package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/store"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	"github.com/spf13/cobra"
)

var titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

func init() {
	resolveCmd.Flags().StringP("file", "f", "", "Tournament JSON file (seed or backup)")
	resolveCmd.Flags().StringP("write", "w", "", "Write the resolved tournament to this file")
	resolveCmd.Flags().Bool("json", false, "Print the result as JSON")
	resolveCmd.MarkFlagRequired("file")
}

// resolveCmd runs the engine locally; no server is involved.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Compute standings and fill placeholders for a tournament file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		snapshot, err := store.ReadSnapshotFile(path)
		if err != nil {
			return err
		}

		report := resolveSnapshot(snapshot)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			printReport(cmd.OutOrStdout(), snapshot, report)
		}

		if out, _ := cmd.Flags().GetString("write"); out != "" {
			raw, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote resolved tournament to %s\n", out)
		}
		return nil
	},
}

type resolveReport struct {
	Standings standings.Result     `json:"standings"`
	Changes   []advancement.Change `json:"changes"`
	Pending   []advancement.Slot   `json:"pending"`
	Unmatched []advancement.Slot   `json:"unmatched"`
}

// resolveSnapshot mutates snapshot in place.
func resolveSnapshot(snapshot *tournament.Snapshot) resolveReport {
	result := standings.Compute(snapshot.Matches)
	return resolveReport{
		Standings: result,
		Changes:   advancement.ResolveWithChanges(snapshot.Matches, result),
		Pending:   advancement.Pending(snapshot.Matches),
		Unmatched: advancement.Unmatched(snapshot.Matches),
	}
}

func printReport(w io.Writer, snapshot *tournament.Snapshot, report resolveReport) {
	for _, category := range categories(snapshot, report.Standings) {
		for _, group := range report.Standings.Groups(category) {
			entrants, _ := report.Standings.Group(category, group)
			fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s · %s", category, group)))
			fmt.Fprintln(w, standingsTable(entrants))
		}
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Advanced (%d)", len(report.Changes))))
	for _, c := range report.Changes {
		fmt.Fprintf(w, "  match %s slot %d: %s -> %s\n", c.MatchID, c.Position, c.Text, c.Name)
	}
	if len(report.Pending) > 0 {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Still waiting (%d)", len(report.Pending))))
		for _, s := range report.Pending {
			fmt.Fprintf(w, "  match %s slot %d: %s\n", s.MatchID, s.Position, s.Text)
		}
	}
	if len(report.Unmatched) > 0 {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Unrecognised placeholders (%d)", len(report.Unmatched))))
		for _, s := range report.Unmatched {
			fmt.Fprintf(w, "  match %s slot %d: %q\n", s.MatchID, s.Position, s.Text)
		}
	}
}

func standingsTable(entrants []standings.Entrant) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "P", "W", "L", "PF", "PA", "+/-")
	for i, e := range entrants {
		t.Row(
			strconv.Itoa(i+1), e.Name,
			strconv.Itoa(e.Played), strconv.Itoa(e.Won), strconv.Itoa(e.Lost),
			strconv.Itoa(e.PointsFor), strconv.Itoa(e.PointsAgainst),
			fmt.Sprintf("%+d", e.PointDiff),
		)
	}
	return t.String()
}

// categories lists the snapshot's declared categories first, then any that
// only appear on matches.
func categories(snapshot *tournament.Snapshot, result standings.Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range snapshot.Categories {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, m := range snapshot.Matches {
		if m != nil && !seen[m.Category] {
			if _, ok := result.Standings[m.Category]; ok {
				seen[m.Category] = true
				out = append(out, m.Category)
			}
		}
	}
	return out
}
