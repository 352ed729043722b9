package cmd

import "github.com/spf13/cobra"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the interactive link browser",
	Long:  "Open the two-pane browser with live search, tag and type filters, sorting and delete.",
	RunE:  runTUI,
}
