package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/engine/clickaway"
	"go.trai.ch/jobsync/internal/state"
	"go.trai.ch/jobsync/internal/ui/output"
)

const lenPrompt = 2

// NewModel creates the browser model driving controller.
func NewModel(w io.Writer, controller Controller) *Model {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	input := textinput.New()
	input.Placeholder = "search jobs"
	input.Prompt = "› "
	input.Focus()

	m := &Model{
		controller: controller,
		clicks:     &ClickSource{},
		Input:      input,
		Focus:      FocusSearch,
		Items:      emptyItems(),
		inFlight:   make(map[string]struct{}),
	}
	m.clickaway = clickaway.New(m.clicks, m.elements(), func(domain.ClickEvent) {
		m.closePopover()
	})
	return m
}

func emptyItems() state.JobItemsState {
	return state.JobItemsState{SortBy: domain.SortRelevant, Page: domain.Paginate(nil, 1, domain.DefaultPageSize)}
}
