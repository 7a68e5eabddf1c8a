// Package export writes the store to files meant for people rather than for
// the next session: a spreadsheet and a dated JSON snapshot.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/compass/internal/compass"
)

const (
	PeopleSheet  = "People"
	HistorySheet = "History"
)

var peopleHeader = []any{"Name", "X", "Y", "Quadrant", "Date Added", "Last Moved"}
var historyHeader = []any{"Timestamp", "Action", "Details"}

// Spreadsheet writes people and edit history to an .xlsx workbook at path.
func Spreadsheet(s *compass.Store, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PeopleSheet); err != nil {
		return err
	}
	if err := writeRow(f, PeopleSheet, 1, peopleHeader); err != nil {
		return err
	}
	for i, p := range s.Points() {
		row := []any{p.Name, p.X, p.Y, string(p.Quadrant), p.DateAdded.String(), p.LastMoved.String()}
		if err := writeRow(f, PeopleSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(HistorySheet); err != nil {
		return err
	}
	if err := writeRow(f, HistorySheet, 1, historyHeader); err != nil {
		return err
	}
	for i, e := range s.History() {
		row := []any{e.Timestamp.String(), string(e.Action), string(e.Details)}
		if err := writeRow(f, HistorySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// SnapshotName is the dated file name used for JSON exports.
func SnapshotName(at time.Time) string {
	return fmt.Sprintf("personality_compass_%s.json", at.Format(time.DateOnly))
}

// Snapshot writes the current document into dir under SnapshotName and
// returns the written path.
func Snapshot(s *compass.Store, dir string, at time.Time) (string, error) {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, SnapshotName(at))
	if err := compass.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}
