package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [folder-id]",
	Short: "List a channel folder",
	Long: `List the items of a channel folder. Without a folder id, lists the top menu.

Folder ids have the form {kind}_{url}, e.g.
  programs_https://www.itv.com/itvplayer/categories/browse/popular/catch-up

Examples:
  catchup browse
  catchup browse programs_https://www.itv.com/itvplayer/categories/drama --start 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowseCmd,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().Int("start", 0, "Index of the first item")
	browseCmd.Flags().Int("limit", 0, "Page size (0 = server maximum)")
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetInt("start")
	limit, _ := cmd.Flags().GetInt("limit")

	var folder string
	if len(args) > 0 {
		folder = args[0]
	}

	resp, err := NewClient(serverURL).Items(folder, start, limit)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if len(resp.Items) == 0 {
		fmt.Println("No items.")
		return nil
	}

	rows := make([][]string, 0, len(resp.Items))
	for i, item := range resp.Items {
		rows = append(rows, []string{
			strconv.Itoa(resp.Start + i),
			item.Kind,
			truncate(item.Name, 60),
			item.ID,
		})
	}
	fmt.Println(renderTable([]string{"#", "Kind", "Name", "ID"}, rows, []columnAlignment{alignRight}))

	end := resp.Start + len(resp.Items)
	fmt.Printf("Showing %d-%d of %d (data version %s)\n", resp.Start+1, end, resp.TotalRecordCount, resp.DataVersion)
	if end < resp.TotalRecordCount {
		fmt.Printf("Next page: --start %d\n", end)
	}
	return nil
}
