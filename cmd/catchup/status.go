package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon and channel status",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusReport struct {
	Server  *StatusResponse  `json:"server"`
	Channel *ChannelResponse `json:"channel"`
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}
	ch, err := client.Channel()
	if err != nil {
		return fmt.Errorf("channel info failed: %w", err)
	}

	if jsonOutput {
		printJSON(statusReport{Server: status, Channel: ch})
		return nil
	}

	fmt.Printf("Server:        %s (%s)\n", serverURL, status.Status)
	fmt.Printf("Version:       %s\n", status.Version)
	fmt.Printf("Channel:       %s\n", ch.Name)
	fmt.Printf("Home page:     %s\n", ch.HomePageURL)
	fmt.Printf("Data version:  %s\n", ch.DataVersion)
	fmt.Printf("Page size:     %d\n", ch.Features.MaxPageSize)
	fmt.Printf("Content types: %s\n", strings.Join(ch.Features.ContentTypes, ", "))
	fmt.Printf("Images:        %s\n", strings.Join(ch.SupportedImages, ", "))
	fmt.Printf("Tasks:         %d (%d running)\n", status.Tasks, status.RunningTasks)
	return nil
}
