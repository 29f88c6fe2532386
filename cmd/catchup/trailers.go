package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trailersCmd = &cobra.Command{
	Use:   "trailers",
	Short: "Inspect local trailer downloads",
}

var trailersHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent trailer outcomes",
	Args:  cobra.NoArgs,
	RunE:  runTrailersHistoryCmd,
}

func init() {
	rootCmd.AddCommand(trailersCmd)
	trailersCmd.AddCommand(trailersHistoryCmd)
	trailersHistoryCmd.Flags().Int("limit", 20, "Number of entries to show")
}

func runTrailersHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	resp, err := NewClient(serverURL).TrailerHistory(limit)
	if err != nil {
		return fmt.Errorf("trailer history failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Entries) == 0 {
		fmt.Println("No trailer history.")
		return nil
	}

	rows := make([][]string, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		detail := e.Path
		if e.Error != "" {
			detail = e.Error
		}
		rows = append(rows, []string{formatTime(e.CreatedAt), truncate(e.Movie, 40), e.Status, truncate(orDash(detail), 60)})
	}
	fmt.Println(renderTable([]string{"When", "Movie", "Status", "Detail"}, rows, nil))
	return nil
}
