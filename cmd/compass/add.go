package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person at the center of the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *compass.Store) error {
				p, err := s.Add(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p)
				return nil
			})
		},
	}
}
