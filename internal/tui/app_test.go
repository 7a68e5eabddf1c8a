package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/compass/internal/compass"
)

func newTestModel(t *testing.T) (Model, *compass.Store) {
	t.Helper()
	clock := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	s := compass.New(t.TempDir(), compass.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	s.SessionStart()
	return NewModel(s, Options{Theme: "green", ConfirmClear: true}), s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func mouse(x, y int, b tea.MouseButton, a tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: a}
}

func addPerson(t *testing.T, m Model, name string) Model {
	t.Helper()
	m = send(t, m, key("a"))
	require.Equal(t, modeAdd, m.mode)
	m = typeText(t, m, name)
	return send(t, m, key("enter"))
}

func actions(s *compass.Store) []compass.Action {
	var out []compass.Action
	for _, e := range s.History() {
		out = append(out, e.Action)
	}
	return out
}

func lastAction(s *compass.Store) compass.Action {
	h := s.History()
	if len(h) == 0 {
		return ""
	}
	return h[len(h)-1].Action
}

func TestAddFromKeyboard(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")

	assert.Equal(t, modeNormal, m.mode)
	p, ok := s.Get("Bob")
	require.True(t, ok)
	assert.Equal(t, compass.Position{}, p.Position)
	assert.Equal(t, "Bob", m.selected())
	assert.Equal(t, compass.ActionPersonAdded, lastAction(s))
	assert.Contains(t, m.View(), "Bob (0, 0) - Gnatty NPC")
}

func TestAddDuplicateShowsError(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = addPerson(t, m, "Bob")

	assert.Equal(t, modeAdd, m.mode)
	assert.True(t, m.statusErr)
	assert.Equal(t, 1, s.Len())

	m = send(t, m, key("esc"))
	assert.Equal(t, modeNormal, m.mode)
}

func TestMouseDragCommitsMove(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	before := len(s.History())

	// Bob sits in the center cell of the plot.
	m = send(t, m, mouse(plotLeft+30, plotTop+15, tea.MouseButtonLeft, tea.MouseActionPress))
	assert.Equal(t, "Bob", m.gesture.Target())

	m = send(t, m, mouse(plotLeft, plotTop, tea.MouseButtonNone, tea.MouseActionMotion))
	p, _ := s.Get("Bob")
	assert.Equal(t, compass.Position{X: -100, Y: 100}, p.Position)
	assert.Len(t, s.History(), before, "previews are not logged")

	m = send(t, m, mouse(plotLeft, plotTop, tea.MouseButtonLeft, tea.MouseActionRelease))
	assert.Equal(t, compass.Idle, m.gesture.State())
	p, _ = s.Get("Bob")
	assert.Equal(t, compass.NotNPC, p.Quadrant)
	require.Len(t, s.History(), before+1)
	assert.Equal(t, compass.ActionPersonMoved, lastAction(s))

	var d compass.MovedDetails
	require.NoError(t, s.History()[before].Decode(&d))
	assert.Equal(t, compass.GnattyNPC, d.OldQuadrant)
	assert.Equal(t, compass.NotNPC, d.NewQuadrant)
}

func TestEscCancelsDrag(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	before := len(s.History())

	m = send(t, m,
		mouse(plotLeft+30, plotTop+15, tea.MouseButtonLeft, tea.MouseActionPress),
		mouse(plotLeft+50, plotTop+25, tea.MouseButtonNone, tea.MouseActionMotion),
		key("esc"),
	)
	assert.Equal(t, compass.Idle, m.gesture.State())
	p, _ := s.Get("Bob")
	assert.Equal(t, compass.Position{}, p.Position)
	assert.Equal(t, compass.GnattyNPC, p.Quadrant)
	assert.Len(t, s.History(), before)

	// A release after cancel is a no-op.
	m = send(t, m, mouse(plotLeft+50, plotTop+25, tea.MouseButtonLeft, tea.MouseActionRelease))
	assert.Len(t, s.History(), before)
}

func TestKeyDuringDragCancelsIt(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")

	m = send(t, m,
		mouse(plotLeft+30, plotTop+15, tea.MouseButtonLeft, tea.MouseActionPress),
		mouse(plotLeft, plotTop, tea.MouseButtonLeft, tea.MouseActionMotion),
		key("a"),
	)
	assert.Equal(t, compass.Idle, m.gesture.State())
	assert.Equal(t, modeAdd, m.mode)
	p, _ := s.Get("Bob")
	assert.Equal(t, compass.Position{}, p.Position)

	m = send(t, m, mouse(plotLeft, plotTop, tea.MouseButtonLeft, tea.MouseActionRelease))
	m = typeText(t, m, "Al")
	m = send(t, m, key("enter"))
	m = send(t, m, mouse(PlotWidth, PlotHeight+plotTop, tea.MouseButtonLeft, tea.MouseActionMotion))

	assert.NotContains(t, actions(s), compass.ActionPersonMoved)
	p, _ = s.Get("Bob")
	assert.Equal(t, compass.Position{}, p.Position)
	assert.Equal(t, compass.GnattyNPC, p.Quadrant)

	saved := compass.New(filepath.Dir(s.Path()))
	require.NoError(t, saved.Load())
	p, _ = saved.Get("Bob")
	assert.Equal(t, compass.Position{}, p.Position)

	// A fresh drag starts normally afterwards.
	m = send(t, m, mouse(plotLeft+30, plotTop+15, tea.MouseButtonLeft, tea.MouseActionPress))
	assert.Equal(t, compass.Dragging, m.gesture.State())
}

func TestReleaseOutsideNormalModeCommits(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = send(t, m,
		mouse(plotLeft+30, plotTop+15, tea.MouseButtonLeft, tea.MouseActionPress),
		mouse(plotLeft, plotTop, tea.MouseButtonLeft, tea.MouseActionMotion),
	)
	m.mode = modeHelp
	m = send(t, m, mouse(plotLeft, plotTop, tea.MouseButtonLeft, tea.MouseActionRelease))

	assert.Equal(t, compass.Idle, m.gesture.State())
	assert.Equal(t, compass.ActionPersonMoved, lastAction(s))
	p, _ := s.Get("Bob")
	assert.Equal(t, compass.NotNPC, p.Quadrant)
}

func TestPressOutsidePlotIgnored(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = send(t, m, mouse(PlotWidth+10, plotTop, tea.MouseButtonLeft, tea.MouseActionPress))
	assert.Equal(t, compass.Idle, m.gesture.State())
	assert.Equal(t, 1, s.Len())
}

func TestRightClickRemoves(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = send(t, m, mouse(plotLeft+30, plotTop+15, tea.MouseButtonRight, tea.MouseActionPress))
	_, ok := s.Get("Bob")
	assert.False(t, ok)
	assert.Equal(t, compass.ActionPersonRemoved, lastAction(s))
	assert.Empty(t, m.people.Items())
}

func TestEditCoordinates(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")

	m = send(t, m, key("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "0.0", m.xInput.Value())

	m.xInput.SetValue("200")
	m = send(t, m, key("tab"))
	assert.True(t, m.yInput.Focused())
	m.yInput.SetValue("-5")
	m = send(t, m, key("enter"))

	assert.Equal(t, modeNormal, m.mode)
	p, _ := s.Get("Bob")
	assert.Equal(t, compass.Position{X: 100, Y: -5}, p.Position)
	assert.Equal(t, compass.GnattyNonNPC, p.Quadrant)
	assert.Equal(t, compass.ActionCoordinatesEdited, lastAction(s))
}

func TestEditRejectsNonNumeric(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	before := len(s.History())

	m = send(t, m, key("e"))
	m.xInput.SetValue("abc")
	m = send(t, m, key("enter"))

	assert.Equal(t, modeEdit, m.mode)
	assert.True(t, m.statusErr)
	assert.Len(t, s.History(), before)
}

func TestEditWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key("e"))
	assert.Equal(t, modeNormal, m.mode)
	assert.True(t, m.statusErr)
}

func TestDeleteSelected(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = addPerson(t, m, "Ann")
	require.Equal(t, "Ann", m.selected())

	m = send(t, m, key("delete"))
	_, ok := s.Get("Ann")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.Len(t, m.people.Items(), 1)
}

func TestNudge(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftLeft}, tea.KeyMsg{Type: tea.KeyShiftDown})
	p, _ := s.Get("Bob")
	assert.Equal(t, compass.Position{X: -5, Y: -5}, p.Position)
	assert.Equal(t, compass.NotNonNPC, p.Quadrant)
}

func TestClearNeedsConfirmation(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")
	m = addPerson(t, m, "Ann")

	m = send(t, m, key("C"))
	require.Equal(t, modeConfirmClear, m.mode)
	assert.Contains(t, m.View(), "Clear all 2 people")
	m = send(t, m, key("n"))
	assert.Equal(t, 2, s.Len())

	m = send(t, m, key("C"), key("y"))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, compass.ActionAllCleared, lastAction(s))
	assert.Empty(t, m.people.Items())
}

func TestMenuRunsAction(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key("/"))
	require.True(t, m.menu.active)
	assert.Contains(t, m.View(), "Commands")

	// First entry is /add.
	m = send(t, m, key("enter"))
	assert.False(t, m.menu.active)
	assert.Equal(t, modeAdd, m.mode)
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, key("?"))
	require.Equal(t, modeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard")
	m = send(t, m, key("esc"))
	assert.Equal(t, modeNormal, m.mode)
}

func TestQuitEndsSession(t *testing.T) {
	m, s := newTestModel(t)
	m = addPerson(t, m, "Bob")

	next, cmd := m.Update(key("q"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, compass.ActionSessionEnded, lastAction(s))
	assert.Empty(t, m.View())

	// A second quit does not log again.
	n := len(s.History())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Len(t, s.History(), n)
}

func TestViewShowsPlot(t *testing.T) {
	m, _ := newTestModel(t)
	m = addPerson(t, m, "Bob")
	v := m.View()
	for _, q := range compass.Quadrants {
		assert.Contains(t, v, string(q))
	}
	assert.True(t, strings.HasPrefix(v, m.st.Title.Render("Personality Compass")))
}
