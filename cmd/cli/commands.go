package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(resolveCmd)

	standingsCmd.Flags().String("category", "", "Only show one category with its overall ranking")

	addUpdateFlags(updateCmd)

	activityCmd.Flags().Int("limit", 20, "Number of entries to show")

	backupCmd.Flags().StringP("out", "o", "", "Write the backup to this file instead of stdout")
	restoreCmd.Flags().StringP("file", "f", "", "Backup file to upload")
	restoreCmd.MarkFlagRequired("file")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the full tournament snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/data")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the current league tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/standings"
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			endpoint += "?category=" + url.QueryEscape(category)
		}
		return performGetRequest(endpoint)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update MATCH_ID",
	Short: "Update a match score, status, winner or players",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := buildUpdate(cmd, args[0])
		if err != nil {
			return err
		}
		return performPostRequest("/api/matches/update", "application/json", body)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info MATCH_ID",
	Short: "Explain where the players of a match came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/matches/" + url.PathEscape(args[0]) + "/advancement-info")
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every match result to scheduled",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/api/admin/reset", "application/json", nil)
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent administrative actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return performGetRequest("/api/admin/activity-logs?limit=" + strconv.Itoa(limit))
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a tournament backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return performGetRequest("/api/backup/download")
		}
		resp, err := http.Get(host + "/api/backup/download")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("backup failed with status %d", resp.StatusCode)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := io.Copy(f, resp.Body)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d bytes to %s\n", n, out)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the tournament with a backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return performPostRequest("/api/backup/upload", "application/json", raw)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "New status: SCHEDULED, PLAYING or COMPLETED")
	cmd.Flags().String("winner", "", "Winner name")
	cmd.Flags().Bool("clear-winner", false, "Remove the winner")
	cmd.Flags().String("score", "", "Score as P1-P2, e.g. 21-15")
	cmd.Flags().String("player1", "", "Override the first slot")
	cmd.Flags().String("player2", "", "Override the second slot")
}

// buildUpdate turns the update flags into a request body. Only flags the
// user set are sent, so the server leaves every other field alone.
func buildUpdate(cmd *cobra.Command, matchID string) ([]byte, error) {
	body := map[string]any{"matchId": matchID}
	flags := cmd.Flags()

	if flags.Changed("status") {
		status, _ := flags.GetString("status")
		body["status"] = status
	}
	if flags.Changed("winner") {
		winner, _ := flags.GetString("winner")
		body["winner"] = winner
	}
	if clearWinner, _ := flags.GetBool("clear-winner"); clearWinner {
		body["winner"] = nil
	}
	if flags.Changed("score") {
		raw, _ := flags.GetString("score")
		p1, p2, err := parseScore(raw)
		if err != nil {
			return nil, err
		}
		body["score"] = map[string]int{"p1": p1, "p2": p2}
	}
	for _, name := range []string{"player1", "player2"} {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			body[name] = v
		}
	}
	return json.Marshal(body)
}

func parseScore(raw string) (int, int, error) {
	var p1, p2 int
	if _, err := fmt.Sscanf(raw, "%d-%d", &p1, &p2); err != nil {
		return 0, 0, fmt.Errorf("invalid score %q, expected P1-P2: %w", raw, err)
	}
	return p1, p2, nil
}

func withDryRun(endpoint string) string {
	if !dryRun {
		return endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	q.Set("dry_run", "true")
	u.RawQuery = q.Encode()
	return u.String()
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func performPostRequest(endpoint, contentType string, body []byte) error {
	url := host + withDryRun(endpoint)
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, contentType, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
