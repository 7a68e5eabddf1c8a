package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the saved data file and report its layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := cfg.DataFile()
			fmt.Fprintf(out, "data file: %s\n", path)

			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(out, "status:    missing (a new file is created on the first change)")
				return nil
			}
			if err != nil {
				return &compass.PersistenceError{Op: "doctor", Path: path, Err: err}
			}

			doc, shape, err := compass.DecodeDocument(data)
			if err != nil {
				fmt.Fprintln(out, "status:    unreadable")
				return &compass.PersistenceError{Op: "doctor", Path: path, Err: err}
			}
			fmt.Fprintf(out, "layout:    %s\n", shape)
			fmt.Fprintf(out, "people:    %d\n", len(doc.People))
			fmt.Fprintf(out, "history:   %d entries\n", len(doc.EditHistory))
			if doc.Metadata.Version != "" {
				fmt.Fprintf(out, "version:   %s\n", doc.Metadata.Version)
				fmt.Fprintf(out, "updated:   %s\n", doc.Metadata.LastUpdated)
			}
			if n := doc.Metadata.TotalPeople; doc.Metadata.Version != "" && n != len(doc.People) {
				fmt.Fprintf(out, "warning:   metadata says %d people, file has %d\n", n, len(doc.People))
			}
			fmt.Fprintln(out, "status:    ok")
			return nil
		},
	}
}
