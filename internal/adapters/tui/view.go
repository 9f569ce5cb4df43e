package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/ui/style"
)

// View renders the model.
func (m *Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Initializing..."
	}

	right := m.detailPane()
	if m.PopoverOpen {
		right = m.popover()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.resultList(), right)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.status(),
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body),
		m.footer(),
	)
}

func (m *Model) buttonView() string {
	return buttonStyle.Render(fmt.Sprintf("%s Bookmarks (%d)", style.Bookmarked, len(m.Bookmarks.IDs)))
}

func (m *Model) header() string {
	left := titleStyle.Render("jobsync") + " " + m.Input.View()
	button := m.buttonView()
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(button), 1)
	return left + strings.Repeat(" ", gap) + button
}

func (m *Model) status() string {
	var parts []string
	switch {
	case m.Items.IsLoading:
		parts = append(parts, "Loading...")
	case m.Items.SearchText == "":
		parts = append(parts, "Type to search")
	default:
		parts = append(parts, fmt.Sprintf("%d results", m.Items.Page.TotalItems))
	}
	if m.Items.Page.TotalPages > 0 {
		parts = append(parts, fmt.Sprintf("page %d/%d", m.Items.Page.Number, m.Items.Page.TotalPages))
	}
	parts = append(parts, "sorted by "+string(m.Items.SortBy))
	if n := m.Requests(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d request(s) in flight", n))
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) resultList() string {
	width := m.listWidth()
	var s strings.Builder

	if m.Items.Err != nil && len(m.Items.Page.Items) == 0 {
		s.WriteString(noticeStyle.Render(domain.UserMessage(m.Items.Err)))
	}

	for i, item := range m.Items.Page.Items {
		mark := style.NotBookmarked
		if slices.Contains(m.Bookmarks.IDs, item.ID) {
			mark = style.Bookmarked
		}
		line := fmt.Sprintf("%s %s", mark, truncate(item.Title, width-6))

		switch {
		case i == m.Cursor && m.Focus == FocusList:
			line = selectedStyle.Render(style.Pointer + " " + line)
		case m.Active.ID.Valid && m.Active.ID.ID == item.ID:
			line = activeStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		s.WriteString(line + "\n")
		s.WriteString(dimStyle.Render("    "+truncate(item.Company+" · "+daysAgo(item.DaysAgo), width-6)) + "\n")
	}

	return listStyle.Width(width).Height(m.bodyHeight()).Render(s.String())
}

func (m *Model) detailPane() string {
	width := max(m.Width-m.listWidth()-2, 1)
	pane := detailStyle.Width(width)

	switch {
	case !m.Active.ID.Valid:
		return pane.Render(dimStyle.Render("Select a job to see its details"))
	case m.Active.IsLoading:
		return pane.Render("Loading...")
	case m.Active.Err != nil && m.Active.JobItem == nil:
		return pane.Render(noticeStyle.Render(domain.UserMessage(m.Active.Err)))
	case m.Active.JobItem == nil:
		return pane.Render("")
	}

	item := m.Active.JobItem
	mark := style.NotBookmarked
	if slices.Contains(m.Bookmarks.IDs, item.ID) {
		mark = style.Bookmarked
	}

	var s strings.Builder
	s.WriteString(selectedStyle.Render(item.Title) + " " + mark + "\n")
	s.WriteString(dimStyle.Render(item.Company+" · "+item.Location+" · "+daysAgo(item.DaysAgo)) + "\n\n")
	if item.Salary != "" {
		s.WriteString("Salary:   " + item.Salary + "\n")
	}
	if item.Duration != "" {
		s.WriteString("Duration: " + item.Duration + "\n")
	}
	if item.Description != "" {
		s.WriteString("\n" + item.Description + "\n")
	}
	if len(item.Qualifications) > 0 {
		s.WriteString("\nQualifications:\n")
		for _, q := range item.Qualifications {
			s.WriteString("  - " + q + "\n")
		}
	}
	if len(item.Reviews) > 0 {
		s.WriteString("\nReviews:\n")
		for _, r := range item.Reviews {
			s.WriteString("  - " + r + "\n")
		}
	}
	return pane.Render(s.String())
}

func (m *Model) popover() string {
	region := m.popoverRegion()
	var s strings.Builder
	s.WriteString(titleStyle.Render("BOOKMARKS") + "\n\n")

	switch {
	case len(m.Bookmarks.IDs) == 0:
		s.WriteString(dimStyle.Render("No bookmarks yet"))
	case m.Bookmarks.IsLoading && len(m.Bookmarks.Items) == 0:
		s.WriteString("Loading...")
	default:
		for i, item := range m.Bookmarks.Items {
			line := style.Bookmarked + " " + truncate(item.Title, region.Width-8)
			if i == m.PopoverCursor {
				line = selectedStyle.Render(style.Pointer + " " + line)
			} else {
				line = "  " + line
			}
			s.WriteString(line + "\n")
		}
	}

	// The border takes two columns and two rows.
	return popoverStyle.
		Width(max(region.Width-2, 1)).
		Height(max(region.Height-2, 1)).
		Render(s.String())
}

func (m *Model) footer() string {
	if m.Notice != "" {
		return noticeStyle.Render(style.Cross + " " + m.Notice)
	}
	return dimStyle.Render("tab focus · enter select · ⌫ back · b bookmark · s sort · ←/→ page · ctrl+b bookmarks · ctrl+r refresh · ctrl+c quit")
}

func daysAgo(days int) string {
	if days <= 0 {
		return "new"
	}
	return strconv.Itoa(days) + "d"
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
