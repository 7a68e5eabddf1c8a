package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/compass/internal/compass"
	"github.com/jeanpaul/compass/internal/export"
)

// nudgeStep is how far shift+arrow moves the selected person.
const nudgeStep = 5.0

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeConfirmClear
	modeHelp
)

// Options configures the presentation.
type Options struct {
	Theme        string
	ConfirmClear bool
}

type personItem struct {
	point compass.Point
}

func (i personItem) Title() string       { return i.point.String() }
func (i personItem) Description() string { return "added " + i.point.DateAdded.String() }
func (i personItem) FilterValue() string { return i.point.Name }

// Model renders the store and forwards input to it. All store access happens
// inside Update, on the bubbletea event loop.
type Model struct {
	store   *compass.Store
	gesture *compass.Gesture
	opts    Options
	st      styles

	width, height int
	mode          mode
	people        list.Model
	nameInput     textinput.Model
	xInput        textinput.Model
	yInput        textinput.Model
	editing       string // name whose coordinates are being typed
	menu          MenuModel
	help          string

	status    string
	statusErr bool
	quitting  bool
}

func NewModel(store *compass.Store, opts Options) Model {
	theme := LookupTheme(opts.Theme)
	st := newStyles(theme)

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(theme.Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(theme.Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(theme.Dim)

	people := list.New(nil, d, 40, PlotHeight)
	people.Title = "People"
	people.SetShowHelp(false)
	people.SetFilteringEnabled(false)
	people.SetStatusBarItemName("person", "people")
	people.Styles.Title = st.Title

	m := Model{
		store:     store,
		gesture:   compass.NewGesture(store),
		opts:      opts,
		st:        st,
		people:    people,
		nameInput: newInput("Name", 40),
		xInput:    newInput("X", 8),
		yInput:    newInput("Y", 8),
		menu:      NewMenuModel(st, theme.Accent),
		help:      renderHelp(store.Path()),
	}
	m.refresh("")
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit
	return ti
}

func (m Model) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w := msg.Width - PlotWidth - 6
		if w < 24 {
			w = 24
		}
		h := msg.Height - 6
		if h < 6 {
			h = 6
		}
		m.people.SetSize(w, h)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		// Any key ends a drag in progress; the point goes back uncommitted.
		if m.gesture.Cancel() {
			m.setStatus("drag cancelled")
			m.refresh(m.selected())
			if msg.Type == tea.KeyEsc {
				return m, nil
			}
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmClear:
			return m.updateConfirmClear(msg)
		case modeHelp:
			if s := msg.String(); s == "esc" || s == "?" || s == "q" || s == "enter" {
				m.mode = modeNormal
			}
			return m, nil
		}
		if m.menu.active {
			var act action
			var cmd tea.Cmd
			m.menu, act, cmd = m.menu.Update(msg)
			if act != "" {
				return m.run(act)
			}
			return m, cmd
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		return m, nil
	case "/":
		m.menu.Open()
		return m, nil
	case "?":
		return m.run(actionHelp)
	case "a", "n":
		return m.run(actionAdd)
	case "e", "enter":
		return m.run(actionEdit)
	case "delete", "backspace", "d":
		return m.run(actionRemove)
	case "C":
		return m.run(actionClear)
	case "X":
		return m.run(actionExport)
	case "shift+up":
		return m.nudge(0, nudgeStep)
	case "shift+down":
		return m.nudge(0, -nudgeStep)
	case "shift+left":
		return m.nudge(-nudgeStep, 0)
	case "shift+right":
		return m.nudge(nudgeStep, 0)
	case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.people, cmd = m.people.Update(msg)
		return m, cmd
	}
	return m, nil
}

// run executes a palette or shortcut action.
func (m Model) run(act action) (tea.Model, tea.Cmd) {
	switch act {
	case actionAdd:
		m.mode = modeAdd
		m.nameInput.Reset()
		return m, m.nameInput.Focus()

	case actionEdit:
		name := m.selected()
		if name == "" {
			m.setError(errors.New("select a person from the list first"))
			return m, nil
		}
		p, _ := m.store.Get(name)
		m.editing = name
		m.mode = modeEdit
		m.xInput.SetValue(fmt.Sprintf("%.1f", p.X))
		m.yInput.SetValue(fmt.Sprintf("%.1f", p.Y))
		m.xInput.CursorEnd()
		m.yInput.CursorEnd()
		m.yInput.Blur()
		return m, m.xInput.Focus()

	case actionRemove:
		name := m.selected()
		if name == "" {
			return m, nil
		}
		if err := m.store.Remove(name); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("removed " + name)
		m.refresh("")

	case actionClear:
		if m.store.Len() == 0 {
			return m, nil
		}
		if m.opts.ConfirmClear {
			m.mode = modeConfirmClear
			return m, nil
		}
		m.clear()

	case actionExport:
		path := filepath.Join(filepath.Dir(m.store.Path()), "people.xlsx")
		if err := export.Spreadsheet(m.store, path); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("exported " + path)

	case actionHelp:
		m.mode = modeHelp

	case actionQuit:
		return m.quit()
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.nameInput.Blur()
		return m, nil
	case "enter":
		p, err := m.store.Add(m.nameInput.Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.mode = modeNormal
		m.nameInput.Blur()
		m.setStatus("added " + p.Name)
		m.refresh(p.Name)
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.xInput.Blur()
		m.yInput.Blur()
		return m, nil
	case "tab", "shift+tab":
		if m.xInput.Focused() {
			m.xInput.Blur()
			return m, m.yInput.Focus()
		}
		m.yInput.Blur()
		return m, m.xInput.Focus()
	case "enter":
		p, err := m.store.EditCoordinates(m.editing, m.xInput.Value(), m.yInput.Value())
		if err != nil {
			if errors.Is(err, compass.ErrInvalidInput) {
				m.setError(errors.New("X and Y must be numbers between -100 and 100"))
			} else {
				m.setError(err)
			}
			return m, nil
		}
		m.mode = modeNormal
		m.xInput.Blur()
		m.yInput.Blur()
		m.setStatus(fmt.Sprintf("moved %s to (%.1f, %.1f)", p.Name, p.X, p.Y))
		m.refresh(p.Name)
		return m, nil
	}
	var cmd tea.Cmd
	if m.xInput.Focused() {
		m.xInput, cmd = m.xInput.Update(msg)
	} else {
		m.yInput, cmd = m.yInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	switch msg.String() {
	case "y", "Y":
		m.clear()
	default:
		m.setStatus("clear cancelled")
	}
	return m, nil
}

func (m *Model) clear() {
	n := m.store.Len()
	m.gesture.Cancel()
	m.store.Clear()
	m.setStatus(fmt.Sprintf("cleared %d people", n))
	m.refresh("")
}

func (m Model) nudge(dx, dy float64) (tea.Model, tea.Cmd) {
	name := m.selected()
	if name == "" {
		return m, nil
	}
	p, _ := m.store.Get(name)
	if _, err := m.store.Move(name, p.X+dx, p.Y+dy); err != nil {
		m.setError(err)
		return m, nil
	}
	m.refresh(name)
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if m.mode != modeNormal || m.menu.active {
			return m, nil
		}
		x, y, ok := screenToCoord(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.gesture.Press(x, y) {
				m.refresh(m.gesture.Target())
			}
		case tea.MouseButtonRight:
			if name, ok := m.gesture.RightClick(x, y); ok {
				m.setStatus("removed " + name)
				m.refresh(m.selected())
			}
		}
	case tea.MouseActionMotion:
		if m.gesture.State() != compass.Dragging {
			return m, nil
		}
		x, y := screenToCoordClamped(msg.X, msg.Y)
		if _, ok := m.gesture.Motion(x, y); ok {
			m.refresh(m.gesture.Target())
		}
	case tea.MouseActionRelease:
		if p, ok := m.gesture.Release(); ok {
			m.setStatus(fmt.Sprintf("moved %s to (%.0f, %.0f) - %s", p.Name, p.X, p.Y, p.Quadrant))
			m.refresh(p.Name)
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.quitting {
		m.gesture.Cancel()
		m.store.SessionEnd()
		m.quitting = true
	}
	return m, tea.Quit
}

// refresh rebuilds the list from the store, keeping or moving the selection
// to name when it is non-empty.
func (m *Model) refresh(name string) {
	if name == "" {
		name = m.selected()
	}
	points := m.store.Points()
	items := make([]list.Item, 0, len(points))
	sel := min(m.people.Index(), len(points)-1)
	for i, p := range points {
		items = append(items, personItem{point: p})
		if p.Name == name {
			sel = i
		}
	}
	m.people.SetItems(items)
	if sel >= 0 {
		m.people.Select(sel)
	}
}

func (m Model) selected() string {
	if it, ok := m.people.SelectedItem().(personItem); ok {
		return it.point.Name
	}
	return ""
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeHelp {
		return m.help
	}

	title := m.st.Title.Render("Personality Compass") + m.st.Help.Render("   Not ← → Gnatty  ·  Non NPC ↓ ↑ NPC")
	plot := m.st.PlotBox.Render(renderPlot(m.st, m.store.Points(), m.selected(), m.gesture.Target()))

	side := m.people.View()
	if menu := m.menu.View(m.st); menu != "" {
		side = menu
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, plot, "  ", side)

	var footer strings.Builder
	switch m.mode {
	case modeAdd:
		footer.WriteString(m.st.Prompt.Render("Add person  " + m.nameInput.View()))
	case modeEdit:
		footer.WriteString(m.st.Prompt.Render(fmt.Sprintf("Edit %s  X %s  Y %s", m.editing, m.xInput.View(), m.yInput.View())))
	case modeConfirmClear:
		footer.WriteString(m.st.Confirm.Render(fmt.Sprintf("Clear all %d people from the grid? (y/n)", m.store.Len())))
	default:
		footer.WriteString(m.st.Help.Render("a add · e edit · d remove · C clear · drag to move · right-click remove · esc cancel drag · / commands · ? help · q quit"))
	}
	footer.WriteByte('\n')
	status := m.st.StatusBar.Render(fmt.Sprintf("%d people", m.store.Len()))
	if m.status != "" {
		style := m.st.Help
		if m.statusErr {
			style = m.st.Error
		}
		status += " " + style.Render(m.status)
	}
	footer.WriteString(status)

	return title + "\n" + body + "\n" + footer.String()
}

const helpMarkdown = `# Personality Compass

Place people on the grid and drag them into place. Positions are saved after
every change.

## Keyboard

| key | action |
|---|---|
| a | add a person at the center |
| e / enter | type coordinates for the selected person |
| d / delete | remove the selected person |
| shift+arrows | nudge the selected person |
| C | clear everyone |
| X | export people.xlsx |
| esc | cancel the current drag |
| / | command palette |
| q | save and quit |

## Mouse

- Left-click and drag a point to move it.
- Right-click a point to remove it.

Data is saved to ` + "`%s`" + `.
`

func renderHelp(path string) string {
	md := fmt.Sprintf(helpMarkdown, path)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
