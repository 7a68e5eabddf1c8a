package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// action names a command reachable from the palette.
type action string

const (
	actionAdd    action = "add"
	actionEdit   action = "edit"
	actionRemove action = "remove"
	actionClear  action = "clear"
	actionExport action = "export"
	actionHelp   action = "help"
	actionQuit   action = "quit"
)

type item struct {
	title, desc string
	action      action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// MenuModel is the "/" command palette.
type MenuModel struct {
	list   list.Model
	active bool
}

func NewMenuModel(st styles, accent lipgloss.Color) MenuModel {
	items := []list.Item{
		item{title: "/add", desc: "Add a person at the center", action: actionAdd},
		item{title: "/edit", desc: "Type coordinates for the selected person", action: actionEdit},
		item{title: "/remove", desc: "Remove the selected person", action: actionRemove},
		item{title: "/clear", desc: "Remove everyone from the grid", action: actionClear},
		item{title: "/export", desc: "Write people.xlsx to the data directory", action: actionExport},
		item{title: "/help", desc: "Show keys and mouse controls", action: actionHelp},
		item{title: "/quit", desc: "Save and exit", action: actionQuit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(LightGray)

	l := list.New(items, d, 44, 16)
	l.Title = "Commands"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = st.Title.MarginLeft(2)

	return MenuModel{list: l}
}

func (m *MenuModel) Open() {
	m.active = true
	m.list.ResetSelected()
}

// Update handles keys while the palette is open. It returns the chosen action
// on enter, or "" otherwise.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, action, tea.Cmd) {
	if !m.active {
		return m, "", nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "/":
			m.active = false
			return m, "", nil
		case "enter":
			m.active = false
			if it, ok := m.list.SelectedItem().(item); ok {
				return m, it.action, nil
			}
			return m, "", nil
		case "q":
			// list binds q to quit; the palette just closes.
			m.active = false
			return m, "", nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, "", cmd
}

func (m MenuModel) View(st styles) string {
	if !m.active {
		return ""
	}
	return st.MenuBox.Render(m.list.View())
}
