package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/compass/internal/compass"
)

func populated(t *testing.T) *compass.Store {
	t.Helper()
	s := compass.New(t.TempDir())
	_, err := s.Add("Alice")
	require.NoError(t, err)
	_, err = s.Add("Bob")
	require.NoError(t, err)
	_, err = s.Move("Bob", -40, -60)
	require.NoError(t, err)
	return s
}

func TestSpreadsheet(t *testing.T) {
	s := populated(t)
	path := filepath.Join(t.TempDir(), "people.xlsx")
	require.NoError(t, Spreadsheet(s, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{PeopleSheet, HistorySheet}, f.GetSheetList())

	rows, err := f.GetRows(PeopleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, []string{"Bob", "-40", "-60", "Not Non-NPC"}, rows[2][:4])

	rows, err = f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "person_moved", rows[3][1])
}

func TestSnapshot(t *testing.T) {
	s := populated(t)
	dir := t.TempDir()
	at := time.Date(2024, 5, 17, 12, 0, 0, 0, time.Local)

	path, err := Snapshot(s, dir, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "personality_compass_2024-05-17.json"), path)

	imported := compass.New(t.TempDir())
	n, err := imported.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	bob, ok := imported.Get("Bob")
	require.True(t, ok)
	assert.Equal(t, compass.NotNonNPC, bob.Quadrant)
}
