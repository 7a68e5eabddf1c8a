package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/compass/internal/compass"
)

// personRow is the machine readable listing of one person.
type personRow struct {
	Name      string           `json:"name" yaml:"name"`
	X         float64          `json:"x" yaml:"x"`
	Y         float64          `json:"y" yaml:"y"`
	Quadrant  compass.Quadrant `json:"quadrant" yaml:"quadrant"`
	DateAdded string           `json:"date_added" yaml:"date_added"`
	LastMoved string           `json:"last_moved" yaml:"last_moved"`
}

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List people with their positions and quadrants",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			s, done, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer done()
			return writeList(cmd.OutOrStdout(), s.Points(), format)
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table|json|yaml)")
	return cmd
}

func writeList(w io.Writer, points []compass.Point, format string) error {
	rows := make([]personRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, personRow{
			Name:      p.Name,
			X:         p.X,
			Y:         p.Y,
			Quadrant:  p.Quadrant,
			DateAdded: p.DateAdded.String(),
			LastMoved: p.LastMoved.String(),
		})
	}

	switch format {
	case "table", "":
		if len(points) == 0 {
			fmt.Fprintln(w, "No people on the grid")
			return nil
		}
		for _, p := range points {
			fmt.Fprintln(w, p)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}
