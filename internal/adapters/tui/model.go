// Package tui provides the interactive job browser.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/jobsync/internal/adapters/telemetry"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/engine/clickaway"
	"go.trai.ch/jobsync/internal/state"
)

const (
	listWidthRatio = 0.4
	// headerHeight covers the title row and the status row.
	headerHeight  = 2
	footerHeight  = 1
	noticeTimeout = 4 * time.Second
)

// Focus is the part of the screen receiving key presses.
type Focus int

const (
	// FocusSearch sends keys to the search box.
	FocusSearch Focus = iota
	// FocusList sends keys to the result list.
	FocusList
)

// Model represents the main TUI state.
type Model struct {
	controller Controller
	clicks     *ClickSource
	clickaway  *clickaway.Detector

	Input  textinput.Model
	Focus  Focus
	Width  int
	Height int

	Search    state.SearchTextState
	Items     state.JobItemsState
	Active    state.ActiveItem
	Bookmarks state.BookmarksState

	// Cursor indexes the items of the current page.
	Cursor int

	PopoverOpen   bool
	PopoverCursor int

	Notice    string
	noticeSeq int

	inFlight map[string]struct{}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Input.Width = max(m.listWidth()-lenPrompt, 1)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.handleClick(domain.Point{X: msg.X, Y: msg.Y})
		}

	case MsgSearchText:
		m.Search = msg.State

	case MsgJobItems:
		if msg.State.Page.Number != m.Items.Page.Number || msg.State.SearchText != m.Items.SearchText {
			m.Cursor = 0
		}
		m.Items = msg.State
		m.Cursor = clamp(m.Cursor, len(m.Items.Page.Items))

	case MsgActive:
		m.Active = msg.State

	case MsgBookmarks:
		m.Bookmarks = msg.State
		m.PopoverCursor = clamp(m.PopoverCursor, len(m.Bookmarks.Items))

	case MsgNotice:
		m.noticeSeq++
		m.Notice = msg.Notice.Message
		seq := m.noticeSeq
		return m, tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
			return msgClearNotice{seq: seq}
		})

	case msgClearNotice:
		if msg.seq == m.noticeSeq {
			m.Notice = ""
		}

	case telemetry.MsgRequestStart:
		m.inFlight[msg.SpanID] = struct{}{}

	case telemetry.MsgRequestDone:
		delete(m.inFlight, msg.SpanID)
	}

	return m, nil
}

//nolint:cyclop // key dispatch
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+b":
		m.togglePopover()
		return nil
	case "ctrl+r":
		m.controller.Refresh()
		return nil
	case "tab":
		return m.setFocus(1 - m.Focus)
	case "esc":
		if m.PopoverOpen {
			m.closePopover()
			return nil
		}
		return m.setFocus(FocusSearch)
	}

	if m.PopoverOpen {
		switch msg.String() {
		case "up", "k":
			m.PopoverCursor = clamp(m.PopoverCursor-1, len(m.Bookmarks.Items))
		case "down", "j":
			m.PopoverCursor = clamp(m.PopoverCursor+1, len(m.Bookmarks.Items))
		case "enter":
			if m.PopoverCursor < len(m.Bookmarks.Items) {
				m.controller.Select(m.Bookmarks.Items[m.PopoverCursor].ID)
				m.closePopover()
			}
		}
		return nil
	}

	if m.Focus == FocusSearch {
		if msg.Type == tea.KeyEnter {
			return m.setFocus(FocusList)
		}
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		m.controller.Search(m.Input.Value())
		return cmd
	}

	items := m.Items.Page.Items
	switch msg.String() {
	case "q":
		return tea.Quit
	case "/":
		return m.setFocus(FocusSearch)
	case "up", "k":
		m.Cursor = clamp(m.Cursor-1, len(items))
	case "down", "j":
		m.Cursor = clamp(m.Cursor+1, len(items))
	case "enter":
		if m.Cursor < len(items) {
			m.controller.Select(items[m.Cursor].ID)
		}
	case "backspace":
		m.controller.Back()
	case "b":
		if m.Active.ID.Valid {
			m.controller.ToggleBookmark(m.Active.ID.ID)
		} else if m.Cursor < len(items) {
			m.controller.ToggleBookmark(items[m.Cursor].ID)
		}
	case "s":
		if m.Items.SortBy == domain.SortRecent {
			m.controller.SetSort(domain.SortRelevant)
		} else {
			m.controller.SetSort(domain.SortRecent)
		}
	case "right", "l":
		m.controller.NextPage()
	case "left", "h":
		m.controller.PreviousPage()
	}
	return nil
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f
	if f == FocusSearch {
		return m.Input.Focus()
	}
	m.Input.Blur()
	return nil
}

// handleClick delivers the press to the outside-click detector first, then
// toggles the popover when the bookmarks button was hit.
func (m *Model) handleClick(p domain.Point) {
	m.clicks.Press(p)
	if m.buttonRegion().Contains(p) {
		m.togglePopover()
	}
}

func (m *Model) togglePopover() {
	if m.PopoverOpen {
		m.closePopover()
		return
	}
	m.PopoverOpen = true
	m.PopoverCursor = 0
	m.clickaway.Init()
}

func (m *Model) closePopover() {
	m.PopoverOpen = false
	m.clickaway.Dispose()
}

// Elements returns the areas that keep the popover open when clicked.
func (m *Model) elements() []ports.Element {
	return []ports.Element{area(m.buttonRegion), area(m.popoverRegion)}
}

// Clicks returns the source of mouse presses, for tests and embedding.
func (m *Model) Clicks() *ClickSource {
	return m.clicks
}

// Requests returns the number of job API requests in flight.
func (m *Model) Requests() int {
	return len(m.inFlight)
}

func (m *Model) listWidth() int {
	return int(float64(m.Width) * listWidthRatio)
}

func (m *Model) bodyHeight() int {
	return max(m.Height-headerHeight-footerHeight, 0)
}

func (m *Model) buttonRegion() domain.Region {
	if m.Width == 0 {
		return domain.Region{}
	}
	w := lipgloss.Width(m.buttonView())
	return domain.Region{X: m.Width - w, Y: 0, Width: w, Height: 1}
}

func (m *Model) popoverRegion() domain.Region {
	if !m.PopoverOpen || m.Width == 0 {
		return domain.Region{}
	}
	x := m.listWidth()
	return domain.Region{X: x, Y: headerHeight, Width: m.Width - x, Height: m.bodyHeight()}
}

// clamp keeps i inside [0, n).
func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(i, n-1))
}
