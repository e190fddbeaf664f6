package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var textCmd = &cobra.Command{
	Use:   "text FILE",
	Short: "Print the text lines of a PDF",
	Long:  "Print the text lines of the selected pages in reading order, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

func init() {
	RootCmd.AddCommand(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	e, err := extractor(cmd, args[0])
	if err != nil {
		return err
	}
	lines, err := e.TextLines()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
