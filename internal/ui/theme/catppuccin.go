package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Overlay0 = lipgloss.Color("#6c7086")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Alert = lipgloss.NewStyle().Foreground(Red).Bold(true)

	// Map cells.
	Graticule = lipgloss.NewStyle().Foreground(Surface1)
	Cursor    = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Position  = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Running   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Cycling   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
)

// Kind picks the accent for a workout kind.
func Kind(kind string) lipgloss.Style {
	switch kind {
	case "running":
		return Running
	case "cycling":
		return Cycling
	case "position":
		return Position
	default:
		return Muted
	}
}
