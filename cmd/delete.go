package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/ingester/internal/archive"
)

var flagYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a link from the archive",
	Long:  "Delete the record with the given id. Asks for confirmation unless --yes is set.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid id %q", args[0])
		}

		if !flagYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete link %d? [y/N] ", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		s, err := newSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if err := s.client.DeleteByID(cmd.Context(), id); err != nil {
			return describeErr(err, id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted link %d.\n", id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
}

// confirm writes prompt to w and reports whether the answer read from r is yes.
// EOF counts as no.
func confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func describeErr(err error, id int) error {
	var ne *archive.NetworkError
	if errors.As(err, &ne) && ne.NotFound() {
		return fmt.Errorf("link %d not found", id)
	}
	return err
}
