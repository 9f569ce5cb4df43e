// Package style provides the colors and icons shared by every jobsync view.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check         = "✓"
	Cross         = "✗"
	Warning       = "!"
	Bookmarked    = "★"
	NotBookmarked = "☆"
	Pointer       = "›"
)
