package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListsCmd creates the lists command.
func NewListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List the mirror lists of the catalog",
		Long: `List the mirror lists of the loaded catalog in catalog order.

The catalog is fetched from the configured sources; the first source that
loads is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), printEvents(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lists := s.engine.ListMirrorLists()
			if len(lists) == 0 {
				_, _ = fmt.Fprintln(out, "The catalog has no mirror lists")
				return nil
			}
			for _, name := range lists {
				_, _ = fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	return cmd
}
