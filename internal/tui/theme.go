package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/compass/internal/compass"
)

var (
	// Core palette
	Green     = lipgloss.Color("#00FF41")
	DarkGreen = lipgloss.Color("#008F11")
	DimGreen  = lipgloss.Color("#003B00")
	Amber     = lipgloss.Color("#FFB000")
	DarkAmber = lipgloss.Color("#8A5F00")
	Black     = lipgloss.Color("#0D0208")
	MidGray   = lipgloss.Color("#3a3a4e")
	LightGray = lipgloss.Color("#aaaaaa")
	White     = lipgloss.Color("#e0e0e0")
	Red       = lipgloss.Color("#FF4136")

	// Quadrant tints, matching the plot labels.
	LightBlue   = lipgloss.Color("#ADD8E6")
	LightCoral  = lipgloss.Color("#F08080")
	LightGreen  = lipgloss.Color("#90EE90")
	LightYellow = lipgloss.Color("#FFFFE0")
)

// ErrorStyle is used for errors printed outside the TUI.
var ErrorStyle = lipgloss.NewStyle().Foreground(Red).Bold(true)

// Theme is the accent pair used for borders, titles and the selected point.
type Theme struct {
	Accent lipgloss.Color
	Dim    lipgloss.Color
}

var themes = map[string]Theme{
	"green": {Accent: Green, Dim: DarkGreen},
	"amber": {Accent: Amber, Dim: DarkAmber},
}

// LookupTheme falls back to green for unknown names.
func LookupTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["green"]
}

type styles struct {
	Title     lipgloss.Style
	PlotBox   lipgloss.Style
	Axis      lipgloss.Style
	Grid      lipgloss.Style
	Point     lipgloss.Style
	Selected  lipgloss.Style
	Dragged   lipgloss.Style
	Label     lipgloss.Style
	Quadrant  map[compass.Quadrant]lipgloss.Style
	StatusBar lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Prompt    lipgloss.Style
	Confirm   lipgloss.Style
	MenuBox   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Title: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		PlotBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Dim),
		Axis:     lipgloss.NewStyle().Foreground(LightGray),
		Grid:     lipgloss.NewStyle().Foreground(MidGray),
		Point:    lipgloss.NewStyle().Foreground(Red).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Dragged:  lipgloss.NewStyle().Foreground(Black).Background(t.Accent).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(White),
		Quadrant: map[compass.Quadrant]lipgloss.Style{
			compass.GnattyNPC:    lipgloss.NewStyle().Foreground(LightBlue).Italic(true),
			compass.NotNPC:       lipgloss.NewStyle().Foreground(LightCoral).Italic(true),
			compass.NotNonNPC:    lipgloss.NewStyle().Foreground(LightGreen).Italic(true),
			compass.GnattyNonNPC: lipgloss.NewStyle().Foreground(LightYellow).Italic(true),
		},
		StatusBar: lipgloss.NewStyle().
			Background(t.Dim).
			Foreground(Black).
			Bold(true).
			Padding(0, 1),
		Error: ErrorStyle,
		Help:  lipgloss.NewStyle().Foreground(LightGray),
		Prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
		Confirm: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		MenuBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
	}
}
