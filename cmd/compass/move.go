package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <name> <x> <y>",
		Short: "Move a person; coordinates are clamped to the grid",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := compass.ParseCoord(args[1])
			if err != nil {
				return fmt.Errorf("move %q: x: %w", args[0], err)
			}
			y, err := compass.ParseCoord(args[2])
			if err != nil {
				return fmt.Errorf("move %q: y: %w", args[0], err)
			}
			return withSession(cmd, func(s *compass.Store) error {
				p, err := s.Move(args[0], x, y)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", p)
				return nil
			})
		},
	}
}
