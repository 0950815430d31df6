package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent send batches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadState()
			if err != nil {
				return err
			}
			if len(s.History) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no send history")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tTEMPLATE\tSENT\tSKIPPED\tFILTERS")
			for _, b := range s.History {
				filters := strings.Join(b.Filters, " AND ")
				if filters == "" {
					filters = "(none)"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					b.Time.Format("2006-01-02 15:04"), b.Template, b.Sent, b.Skipped, filters)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(newHistoryClearCmd(a))
	return cmd
}

func newHistoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all send history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadState()
			if err != nil {
				return err
			}
			s.ClearHistory()
			if err := a.saveState(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	}
}
