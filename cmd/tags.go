package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/ingester/internal/view"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print every tag in the archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		records, err := s.client.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range view.TagUniverse(records) {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}
