package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name> <x> <y>",
		Short: "Set a person's coordinates as typed values",
		Long:  `Set a person's coordinates. Both values must be numbers; they are clamped to [-100, 100].`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *compass.Store) error {
				p, err := s.EditCoordinates(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", p)
				return nil
			})
		},
	}
}
