package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	red    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	green  = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle        = lipgloss.NewStyle().Foreground(dim)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	errorStyle        = lipgloss.NewStyle().Foreground(red)
	noticeStyle       = lipgloss.NewStyle().Foreground(green)
	placeholderStyle  = lipgloss.NewStyle().Foreground(dim)
)

// ButtonStyle returns the style of the register button.
func ButtonStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	if focused {
		return s.BorderForeground(accent).Bold(true)
	}
	return s.BorderForeground(dim)
}

// NoticeBox returns the framed style used for the success acknowledgment.
func NoticeBox() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(green).
		Padding(0, 1)
}
