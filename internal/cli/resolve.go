package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/mirrorget/pkg/catalog"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <list> <item>",
		Short: "Show the mirrors that would be tried for an item",
		Long: `Print the candidate mirror URLs of an item for the target operating
system, in the order a download would try them. Nothing is downloaded.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), printEvents(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			c := s.engine.Catalog()
			if _, err := c.Lookup(args[0], args[1]); err != nil {
				return lookupError(c, args[0], args[1], err)
			}

			out := cmd.OutOrStdout()
			target := s.engine.EffectiveOS()
			urls := catalog.Resolve(c, args[0], args[1], target)
			if len(urls) == 0 {
				_, _ = fmt.Fprintf(out, "No mirrors found for '%s' on %s.\n", args[1], target)
				return nil
			}
			for _, u := range urls {
				_, _ = fmt.Fprintln(out, u)
			}
			return nil
		},
	}

	return cmd
}
