package tui

import "go.trai.ch/jobsync/internal/core/domain"

// Controller applies user actions to the session state.
// Results come back to the model as messages.
type Controller interface {
	Search(text string)
	Select(id int)
	// Back returns to the previously selected job item.
	Back()
	ToggleBookmark(id int)
	// Refresh refetches the visible list and the selected job item.
	Refresh()
	SetSort(by domain.SortBy)
	NextPage()
	PreviousPage()
}
