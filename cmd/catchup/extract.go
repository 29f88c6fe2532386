package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/listing"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.html>",
	Short: "Run a listing rule set against a saved page (local, no server needed)",
	Long: `Run the programmes or episodes rule set against a saved HTML page and
show every item outcome, including items skipped for missing fields.

Use it to check the rules after the broadcaster changes its markup.

Examples:
  catchup extract --kind programs popular.html
  catchup extract --kind episodes --base https://www.itv.com show.html`,
	Args: cobra.ExactArgs(1),
	RunE: runExtractCmd,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().String("kind", string(channel.KindPrograms), "Rule set: programs or episodes")
	extractCmd.Flags().String("base", channel.DefaultHomeURL, "Base URL for resolving relative links")
}

// extractReport is the JSON form of an extract run.
type extractReport struct {
	RuleSet string         `json:"rule_set"`
	Items   []listing.Item `json:"items"`
	Skipped []extractSkip  `json:"skipped"`
}

type extractSkip struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	base, _ := cmd.Flags().GetString("base")

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	report, err := extract(f, channel.Kind(kind), base)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(report)
		return nil
	}
	printExtractReport(cmd.OutOrStdout(), report)
	return nil
}

func extract(r io.Reader, kind channel.Kind, base string) (*extractReport, error) {
	rs, err := channel.RulesFor(kind, base)
	if err != nil {
		return nil, err
	}
	ex, err := listing.Extract(r, rs)
	if err != nil {
		return nil, err
	}

	report := &extractReport{RuleSet: rs.Name, Items: []listing.Item{}, Skipped: []extractSkip{}}
	for o := range ex.Outcomes() {
		if o.Err != nil {
			report.Skipped = append(report.Skipped, extractSkip{Index: o.Index, Reason: o.Err.Error()})
			continue
		}
		report.Items = append(report.Items, o.Item)
	}
	return report, nil
}

func printExtractReport(w io.Writer, report *extractReport) {
	rows := make([][]string, 0, len(report.Items))
	for i, item := range report.Items {
		rows = append(rows, []string{strconv.Itoa(i), string(item.Kind), truncate(item.Name, 50), item.ID, orDash(item.ImageURL)})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable([]string{"#", "Kind", "Name", "ID", "Image"}, rows, []columnAlignment{alignRight}))
	}

	fmt.Fprintf(w, "%s: %d items, %d skipped\n", report.RuleSet, len(report.Items), len(report.Skipped))
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "  skipped node %d: %s\n", s.Index, s.Reason)
	}
}
