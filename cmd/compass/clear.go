package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove everyone from the grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				s, done, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer done()
				if s.Len() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear")
					return nil
				}
				return fmt.Errorf("refusing to clear %d people without --yes", s.Len())
			}
			return withSession(cmd, func(s *compass.Store) error {
				n := s.Len()
				s.Clear()
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d people\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Confirm removing everyone")
	return cmd
}
