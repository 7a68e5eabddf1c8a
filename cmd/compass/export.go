package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/export"
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dated JSON snapshot and optionally a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("json")
			xlsx, _ := cmd.Flags().GetString("xlsx")

			s, done, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer done()

			if dir != "" {
				path, err := export.Snapshot(s, dir, time.Now())
				if err != nil {
					return fmt.Errorf("export json: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			if xlsx != "" {
				if err := export.Spreadsheet(s, xlsx); err != nil {
					return fmt.Errorf("export xlsx: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", xlsx)
			}
			return nil
		},
	}
	cmd.Flags().String("json", ".", "Directory for the dated JSON snapshot (empty to skip)")
	cmd.Flags().String("xlsx", "", "Path of an .xlsx workbook to write")
	return cmd
}
