package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace everyone with the people in a saved or exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *compass.Store) error {
				n, err := s.Import(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d people\n", n)
				return nil
			})
		},
	}
}
