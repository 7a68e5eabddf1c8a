package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent edit log entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, _ := cmd.Flags().GetInt("number")
			s, done, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer done()

			entries := s.History()
			if n > 0 && n < len(entries) {
				entries = entries[len(entries)-n:]
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-20s %s\n", e.Timestamp, e.Action, e.Details)
			}
			return nil
		},
	}
	cmd.Flags().IntP("number", "n", 20, "Number of entries to show (0 for all)")
	return cmd
}
