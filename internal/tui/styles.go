package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	bannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	seatStyle      = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	currentStyle   = seatStyle.Bold(true).Foreground(colorYellow).Border(lipgloss.RoundedBorder()).BorderForeground(colorYellow)
	idleSeatStyle  = seatStyle.Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1)
	emptySeatStyle = seatStyle.Foreground(colorOverlay0).Border(lipgloss.HiddenBorder())

	redCardStyle   = lipgloss.NewStyle().Foreground(colorRed)
	blackCardStyle = lipgloss.NewStyle().Foreground(colorText)
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	cursorStyle    = lipgloss.NewStyle().Underline(true).Bold(true)

	hintStyle  = lipgloss.NewStyle().Foreground(colorOverlay0)
	readyStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	lobbyStyle = lipgloss.NewStyle().Foreground(colorTeal)
	faultStyle = lipgloss.NewStyle().Foreground(colorRed)
)
