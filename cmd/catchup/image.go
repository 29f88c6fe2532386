package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:       "image <thumb|backdrop>",
	Short:     "Download a channel image",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"thumb", "backdrop"},
	RunE:      runImageCmd,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.Flags().StringP("output", "o", "", "Output file (default <type>.png)")
}

func runImageCmd(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = args[0] + ".png"
	}

	body, contentType, err := NewClient(serverURL).Image(args[0])
	if err != nil {
		return fmt.Errorf("image failed: %w", err)
	}
	defer func() { _ = body.Close() }()

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d bytes)\n", out, contentType, n)
	return nil
}
