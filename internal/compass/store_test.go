package compass

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlacesAtOrigin(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Add("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, Position{}, p.Position)
	assert.Equal(t, GnattyNPC, p.Quadrant)
	assert.False(t, p.DateAdded.IsZero())

	h := s.History()
	require.Len(t, h, 1)
	assert.Equal(t, ActionPersonAdded, h[0].Action)
	var d AddedDetails
	require.NoError(t, h[0].Decode(&d))
	assert.Equal(t, "Alice", d.Name)
	assert.Equal(t, GnattyNPC, d.Quadrant)

	_, err = os.Stat(s.Path())
	assert.NoError(t, err, "add should persist")
}

func TestAddRejectsDuplicateAndBlank(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("Alice")
	require.NoError(t, err)

	_, err = s.Add("Alice")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.Add("")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = s.Add(" \t ")
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.Equal(t, 1, s.Len())
	assert.Len(t, s.History(), 1)
}

func TestSetPositionClampsWithoutLogging(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("Alice")
	require.NoError(t, err)

	p, err := s.SetPosition("Alice", 500, -999)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 100, Y: -100}, p.Position)
	assert.Equal(t, GnattyNonNPC, p.Quadrant)
	assert.True(t, p.LastMoved.After(added.LastMoved.Time))
	assert.Len(t, s.History(), 1, "set position must not log")

	_, err = s.SetPosition("Nobody", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBobScenario(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Add("Bob")
	require.NoError(t, err)
	assert.Equal(t, Position{}, p.Position)
	assert.Equal(t, GnattyNPC, p.Quadrant)

	p, err = s.Move("Bob", -50, 30)
	require.NoError(t, err)
	assert.Equal(t, NotNPC, p.Quadrant)

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, ActionPersonMoved, h[1].Action)
	var moved MovedDetails
	require.NoError(t, h[1].Decode(&moved))
	assert.Equal(t, GnattyNPC, moved.OldQuadrant)
	assert.Equal(t, NotNPC, moved.NewQuadrant)
	assert.Equal(t, Position{X: -50, Y: 30}, moved.NewPosition)

	p, err = s.EditCoordinates("Bob", "200", "-5")
	require.NoError(t, err)
	assert.Equal(t, Position{X: 100, Y: -5}, p.Position)
	assert.Equal(t, GnattyNonNPC, p.Quadrant)

	h = s.History()
	require.Len(t, h, 3)
	assert.Equal(t, ActionCoordinatesEdited, h[2].Action)
	var edited MovedDetails
	require.NoError(t, h[2].Decode(&edited))
	assert.Equal(t, Position{X: -50, Y: 30}, edited.OldPosition)
	assert.Equal(t, Position{X: 100, Y: -5}, edited.NewPosition)
	assert.Equal(t, NotNPC, edited.OldQuadrant)
	assert.Equal(t, "manual_input", edited.Method)
}

func TestParseCoord(t *testing.T) {
	v, err := ParseCoord(" -3.5 ")
	require.NoError(t, err)
	assert.Equal(t, -3.5, v)

	for _, in := range []string{"", "abc", "NaN", "Inf", "+Inf", "-Inf", "1e400"} {
		_, err := ParseCoord(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestEditCoordinatesRejectsNonNumeric(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("Alice")
	require.NoError(t, err)

	for _, in := range [][2]string{{"abc", "1"}, {"1", ""}, {"NaN", "0"}, {"1", "Inf"}} {
		_, err := s.EditCoordinates("Alice", in[0], in[1])
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
	p, _ := s.Get("Alice")
	assert.Equal(t, Position{}, p.Position)
	assert.Len(t, s.History(), 1)

	_, err = s.EditCoordinates("Nobody", "1", "2")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err = s.EditCoordinates("Alice", " 12.5 ", "-7")
	require.NoError(t, err)
	assert.Equal(t, Position{X: 12.5, Y: -7}, p.Position)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("Alice")
	require.NoError(t, err)
	_, err = s.Move("Alice", -10, -10)
	require.NoError(t, err)

	err = s.Remove("Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
	assert.Len(t, s.History(), 2)

	require.NoError(t, s.Remove("Alice"))
	assert.Equal(t, 0, s.Len())
	h := s.History()
	require.Len(t, h, 3)
	var d RemovedDetails
	require.NoError(t, h[2].Decode(&d))
	assert.Equal(t, "Alice", d.Name)
	assert.Equal(t, NotNonNPC, d.Quadrant)
	assert.Equal(t, Position{X: -10, Y: -10}, d.Position)
	assert.False(t, d.DateAdded.IsZero())
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	for _, n := range []string{"Alice", "Bob", "Carol"} {
		_, err := s.Add(n)
		require.NoError(t, err)
	}

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Points())

	h := s.History()
	require.Len(t, h, 4)
	assert.Equal(t, ActionAllCleared, h[3].Action)
	var d ClearedDetails
	require.NoError(t, h[3].Decode(&d))
	assert.Equal(t, 3, d.PeopleCount)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, d.PeopleNames)

	_, err := s.Add("Alice")
	assert.NoError(t, err, "names are free again after clear")
}

func TestPointsKeepInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	names := []string{"Zed", "Alice", "Mike", "Bob"}
	for _, n := range names {
		_, err := s.Add(n)
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove("Alice"))
	_, err := s.Add("Alice")
	require.NoError(t, err)

	var got []string
	for _, p := range s.Points() {
		got = append(got, p.Name)
	}
	assert.Equal(t, []string{"Zed", "Mike", "Bob", "Alice"}, got)
}

func TestFindNear(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("First")
	require.NoError(t, err)
	_, err = s.Add("Second")
	require.NoError(t, err)
	_, err = s.Move("Second", 3, 3)
	require.NoError(t, err)

	name, ok := s.FindNear(2, 2)
	assert.True(t, ok)
	assert.Equal(t, "First", name, "ties go to insertion order")

	name, ok = s.FindNear(7.5, 7.5)
	assert.True(t, ok)
	assert.Equal(t, "Second", name)

	_, ok = s.FindNear(-5, 0)
	assert.False(t, ok, "threshold is strict")

	_, ok = s.FindNear(50, 50)
	assert.False(t, ok)
}

func TestHistoryCappedAtMax(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 150; i++ {
		_, err := s.Add(fmt.Sprintf("p%03d", i))
		require.NoError(t, err)
	}

	h := s.History()
	require.Len(t, h, MaxHistory)
	for i, e := range h {
		var d AddedDetails
		require.NoError(t, e.Decode(&d))
		assert.Equal(t, fmt.Sprintf("p%03d", i+50), d.Name)
	}
}

func TestSessionBookkeeping(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, WithClock(tickClock()))
	require.NoError(t, s.Load())
	s.SessionStart()
	_, err := s.Add("Alice")
	require.NoError(t, err)
	s.SessionEnd()

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, ActionSessionStarted, h[0].Action)
	assert.Equal(t, ActionSessionEnded, h[2].Action)

	var started SessionStartedDetails
	require.NoError(t, h[0].Decode(&started))
	assert.NotEmpty(t, started.SessionID)
	assert.Equal(t, 0, started.PreviousTotalPeople)
	assert.True(t, started.PreviousLastUpdated.IsZero())

	var ended SessionEndedDetails
	require.NoError(t, h[2].Decode(&ended))
	assert.Equal(t, 1, ended.FinalPeopleCount)
	assert.Equal(t, 3.0, ended.SessionDurationSeconds)

	next := New(dir, WithClock(tickClock()))
	require.NoError(t, next.Load())
	next.SessionStart()
	h = next.History()
	require.Len(t, h, 4)
	require.NoError(t, h[3].Decode(&started))
	assert.Equal(t, 1, started.PreviousTotalPeople)
	assert.False(t, started.PreviousLastUpdated.IsZero())
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0644))

	s := New(blocker, WithClock(tickClock()))
	p, err := s.Add("Alice")
	require.NoError(t, err, "persistence failures are not surfaced by mutations")
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 1, s.Len())

	err = s.Save()
	assert.ErrorIs(t, err, ErrPersistence)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
}
