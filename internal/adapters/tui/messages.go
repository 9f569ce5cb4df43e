package tui

import (
	"go.trai.ch/jobsync/internal/adapters/notify"
	"go.trai.ch/jobsync/internal/state"
)

// MsgSearchText carries a change of the search text scope.
type MsgSearchText struct {
	State state.SearchTextState
}

// MsgJobItems carries a change of the job items scope.
type MsgJobItems struct {
	State state.JobItemsState
}

// MsgActive carries a change of the active job item.
type MsgActive struct {
	State state.ActiveItem
}

// MsgBookmarks carries a change of the bookmarks scope.
type MsgBookmarks struct {
	State state.BookmarksState
}

// MsgNotice carries a reported failure.
type MsgNotice struct {
	Notice notify.Notice
}

// msgClearNotice hides the notice shown since seq, unless a newer one replaced it.
type msgClearNotice struct {
	seq int
}
