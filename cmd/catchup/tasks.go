package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const defaultTaskKey = "local-trailers"

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage scheduled tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks and their state",
	Args:  cobra.NoArgs,
	RunE:  runTasksListCmd,
}

var tasksStatusCmd = &cobra.Command{
	Use:   "status [key]",
	Short: "Show one task (default: local-trailers)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTasksStatusCmd,
}

var tasksRunCmd = &cobra.Command{
	Use:   "run [key]",
	Short: "Start a task now (default: local-trailers)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTasksRunCmd,
}

var tasksCancelCmd = &cobra.Command{
	Use:   "cancel [key]",
	Short: "Cancel a running task (default: local-trailers)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTasksCancelCmd,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd, tasksStatusCmd, tasksRunCmd, tasksCancelCmd)
}

func taskKey(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultTaskKey
}

func taskState(t TaskResponse) string {
	switch {
	case t.Running:
		return "running " + percent(t.Progress)
	case !t.Enabled:
		return "disabled"
	case t.LastStatus != "":
		return t.LastStatus
	default:
		return "idle"
	}
}

func runTasksListCmd(cmd *cobra.Command, args []string) error {
	resp, err := NewClient(serverURL).Tasks()
	if err != nil {
		return fmt.Errorf("list tasks failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	var rows [][]string
	for _, t := range resp.Tasks {
		if t.Hidden {
			continue
		}
		rows = append(rows, []string{t.Key, t.Name, taskState(t), formatTime(t.LastEnd), formatTime(t.NextRun)})
	}
	if len(rows) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	fmt.Println(renderTable([]string{"Key", "Name", "State", "Last Run", "Next Run"}, rows, nil))
	return nil
}

func runTasksStatusCmd(cmd *cobra.Command, args []string) error {
	t, err := NewClient(serverURL).Task(taskKey(args))
	if err != nil {
		return fmt.Errorf("task status failed: %w", err)
	}

	if jsonOutput {
		printJSON(t)
		return nil
	}

	fmt.Printf("%s (%s)\n", t.Name, t.Key)
	if t.Description != "" {
		fmt.Printf("  %s\n", t.Description)
	}
	fmt.Printf("  Category:  %s\n", t.Category)
	fmt.Printf("  State:     %s\n", taskState(*t))
	fmt.Printf("  Triggers:  %s\n", orDash(strings.Join(t.Triggers, ", ")))
	if t.RunID != "" {
		fmt.Printf("  Run ID:    %s\n", t.RunID)
	}
	fmt.Printf("  Last run:  %s - %s\n", formatTime(t.LastStart), formatTime(t.LastEnd))
	if t.LastError != "" {
		fmt.Printf("  Error:     %s\n", t.LastError)
	}
	fmt.Printf("  Next run:  %s\n", formatTime(t.NextRun))
	return nil
}

func runTasksRunCmd(cmd *cobra.Command, args []string) error {
	resp, err := NewClient(serverURL).RunTask(taskKey(args))
	if err != nil {
		return fmt.Errorf("run task failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Printf("Started %s (run %s)\n", resp.Key, resp.RunID)
	return nil
}

func runTasksCancelCmd(cmd *cobra.Command, args []string) error {
	key := taskKey(args)
	if err := NewClient(serverURL).CancelTask(key); err != nil {
		return fmt.Errorf("cancel task failed: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{"key": key, "status": "cancelling"})
		return nil
	}
	fmt.Printf("Cancelling %s\n", key)
	return nil
}
