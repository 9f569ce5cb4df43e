package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/jobsync/internal/ui/style"
)

var (
	// Pane Styles.
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			PaddingRight(1)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	popoverStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Accent).
			Padding(0, 1)

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(style.White)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(style.Yellow)

	// Item Styles.
	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Accent).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	dimStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	noticeStyle = lipgloss.NewStyle().
			Foreground(style.Red)
)
