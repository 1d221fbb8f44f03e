package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cperrin88/mirrorget/pkg/catalog"
	"github.com/cperrin88/mirrorget/pkg/errutils"
)

// NewItemsCmd creates the items command.
func NewItemsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "items <list>",
		Short: "List the downloadable items of a mirror list",
		Long: `List the items of a mirror list that have at least one mirror for the
target operating system (the --os flag, the configured os, or the host).

Use --all to show every item together with the systems it is available for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), printEvents(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			c := s.engine.Catalog()
			list, ok := c.List(args[0])
			if !ok {
				return lookupError(c, args[0], "", errutils.ErrMirrorListNotFoundWithName(args[0]))
			}

			out := cmd.OutOrStdout()
			target := s.engine.EffectiveOS()
			if !all {
				keys := s.engine.ListAvailableItems(list.Name, target)
				if len(keys) == 0 {
					_, _ = fmt.Fprintf(out, "No items in '%s' are available for %s\n", list.Name, target)
					return nil
				}
				for _, key := range keys {
					_, _ = fmt.Fprintln(out, key)
				}
				return nil
			}

			tabWriter := tabwriter.NewWriter(out, 0, 0, TabWidth, ' ', 0)
			_, _ = fmt.Fprintln(tabWriter, "ITEM\tSYSTEMS\tMIRRORS")
			for _, it := range list.Items() {
				_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%d\n", it.Key, systemsOf(it.Candidates), len(it.Candidates.For(target)))
			}
			return tabWriter.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show all items, including those unavailable for the target OS")

	return cmd
}

func systemsOf(set catalog.CandidateSet) string {
	switch s := set.(type) {
	case catalog.Flat:
		return "any"
	case catalog.OSPartitioned:
		var names []string
		for _, o := range s.Systems() {
			if s.Available(o) {
				names = append(names, o.String())
			}
		}
		if len(names) == 0 {
			return "-"
		}
		return strings.Join(names, ",")
	default:
		return "-"
	}
}
