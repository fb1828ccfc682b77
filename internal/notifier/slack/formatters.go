package slack

import (
	"fmt"
	"strings"

	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	"github.com/slack-go/slack"
)

// formatResult creates the Slack message for a finished match using Block Kit.
func formatResult(match *tournament.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏸 Match finished! 🏸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s · %s", match.Category, match.Stage)
	if match.Court != "" {
		detailsText += fmt.Sprintf("\n%s", match.Court)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	resultText := "Result: No score reported."
	if match.Score != nil {
		resultText = fmt.Sprintf("%s %d - %d %s", match.Player1, match.Score.P1, match.Score.P2, match.Player2)
	}
	if winner := match.WinnerName(); winner != "" {
		resultText += fmt.Sprintf("\n%s won! 🏆", winner)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatAdvancements lists every slot filled in one resolution pass.
func formatAdvancements(changes []advancement.Change) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "➡️ Players advanced", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for _, c := range changes {
		lines = append(lines, fmt.Sprintf("• *%s* takes _%s_ in match %s (%s)", c.Name, c.Text, c.MatchID, c.Category))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

func formatRefresh(snapshot *tournament.Snapshot, reason string) slack.Message {
	var text string
	switch reason {
	case notifier.ReasonReset:
		text = fmt.Sprintf("All %d match results were reset to scheduled.", len(snapshot.Matches))
	case notifier.ReasonRestore:
		text = fmt.Sprintf("Tournament restored from backup: %d players, %d matches.", len(snapshot.Players), len(snapshot.Matches))
	default:
		text = fmt.Sprintf("Tournament data refreshed (%s).", reason)
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, false, false), nil, nil),
	)
}

// formatStandings renders a standings table, one line per entrant.
func formatStandings(category, group string, table []standings.Entrant) slack.Message {
	blocks := make([]slack.Block, 0)

	title := fmt.Sprintf("📊 %s · Group %s", category, group)
	if group == "" || strings.EqualFold(group, "Pool") {
		title = fmt.Sprintf("📊 %s", category)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	if len(table) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No completed matches yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, e := range table {
		lines = append(lines, fmt.Sprintf("%d. %s  W%d L%d  %+d", i+1, e.Name, e.Won, e.Lost, e.PointDiff))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "```"+strings.Join(lines, "\n")+"```", false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
