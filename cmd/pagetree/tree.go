package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the component trees of a PDF as markup",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	RootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	e, err := extractor(cmd, args[0])
	if err != nil {
		return err
	}
	out, err := e.Markup()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
