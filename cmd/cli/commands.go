package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var (
	recordGroupID string
	recordTeamA   []string
	recordTeamB   []string
	recordScoreA  int
	recordScoreB  int
	recordRanked  bool
	recordInexact bool
	recordCourt   int

	scheduleFile string
	removeReplay bool
)

func init() {
	recordCmd.Flags().StringVar(&recordGroupID, "group", "", "The group ID to record the match against")
	recordCmd.Flags().StringSliceVar(&recordTeamA, "team-a", nil, "Player names on team A (empty string for an anonymous slot)")
	recordCmd.Flags().StringSliceVar(&recordTeamB, "team-b", nil, "Player names on team B")
	recordCmd.Flags().IntVar(&recordScoreA, "score-a", 0, "Team A score")
	recordCmd.Flags().IntVar(&recordScoreB, "score-b", 0, "Team B score")
	recordCmd.Flags().BoolVar(&recordRanked, "ranked", true, "Whether the match moves ratings")
	recordCmd.Flags().BoolVar(&recordInexact, "inexact", false, "Mark the score as symbolic win/lose rather than real numbers")
	recordCmd.Flags().IntVar(&recordCourt, "court", 0, "The court the match was played on")
	recordCmd.MarkFlagRequired("group")

	nextCmd.Flags().StringVarP(&scheduleFile, "file", "f", "", "Path to a JSON session file (defaults to stdin)")
	roundCmd.Flags().StringVarP(&scheduleFile, "file", "f", "", "Path to a JSON session file (defaults to stdin)")
	removeCmd.Flags().BoolVar(&removeReplay, "replay", false, "Replay the group's rating history after removal")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(createGroupCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(replayCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var createGroupCmd = &cobra.Command{
	Use:   "create-group <name> [player...]",
	Short: "Create a group and its initial players",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"name": args[0], "players": args[1:]}
		return performJSONRequest(http.MethodPost, "/groups", body)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players <group-id>",
	Short: "List the players in a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/groups/" + url.PathEscape(args[0]) + "/players")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <group-id>",
	Short: "Show the group standings, best rating first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/groups/" + url.PathEscape(args[0]) + "/leaderboard")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches <group-id>",
	Short: "List the recorded matches for a group, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches?group_id=" + url.QueryEscape(args[0]))
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Propose the next match from a JSON session",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readScheduleBody()
		if err != nil {
			return err
		}
		return performRawRequest(http.MethodPost, "/schedule/next", body)
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Propose a batch of matches from a JSON session",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readScheduleBody()
		if err != nil {
			return err
		}
		return performRawRequest(http.MethodPost, "/schedule/round", body)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a completed match",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"group_id":      recordGroupID,
			"team_a":        recordTeamA,
			"team_b":        recordTeamB,
			"team_a_score":  recordScoreA,
			"team_b_score":  recordScoreB,
			"ranked":        recordRanked,
			"inexact_score": recordInexact,
			"court":         recordCourt,
		}
		return performJSONRequest(http.MethodPost, "/matches", body)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <match-id>",
	Short: "Remove a recorded match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matches/" + url.PathEscape(args[0])
		if removeReplay {
			endpoint += "?replay=true"
		}
		return performRawRequest(http.MethodDelete, endpoint, nil)
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <group-id>",
	Short: "Rebuild a group's ratings from the full match history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performJSONRequest(http.MethodPost, "/replay", map[string]string{"group_id": args[0]})
	},
}

func readScheduleBody() ([]byte, error) {
	if scheduleFile == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(scheduleFile)
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func performJSONRequest(method, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return performRawRequest(method, endpoint, payload)
}

func performRawRequest(method, endpoint string, body []byte) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))
	return nil
}
