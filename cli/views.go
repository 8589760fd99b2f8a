package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/asaidimu/go-portal/core/portal"
	"github.com/spf13/cobra"
)

func newViewsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the screen views and their criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VIEW\tSEARCH\tFILTERS\tTABS\tSORTS\tNEWEST BY")
			for _, v := range portal.Views() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					v.Name(),
					list(v.SearchFields()),
					list(v.FilterFields()),
					list(v.Tabs()),
					list(v.Comparators()),
					orDash(v.DateField()))
			}
			return w.Flush()
		},
	}
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
