package domain

import (
	"strconv"
	"strings"
	"time"
)

// QueryKind distinguishes the two remote read endpoints.
type QueryKind uint8

const (
	// KindJobItem addresses a single expanded job item by id.
	KindJobItem QueryKind = iota
	// KindJobItems addresses a search result list by text.
	KindJobItems
)

// QueryKey uniquely identifies a cache entry.
// It is comparable and used directly as a map key.
type QueryKey struct {
	Kind QueryKind
	ID   int
	Text string
}

// JobItemKey returns the key of the job item with the given id.
func JobItemKey(id int) QueryKey {
	return QueryKey{Kind: KindJobItem, ID: id}
}

// JobItemsKey returns the key of the search result list for text.
func JobItemsKey(text string) QueryKey {
	return QueryKey{Kind: KindJobItems, Text: text}
}

// Enabled reports whether the key may trigger a network request.
// Non-positive ids and blank search texts are disabled.
func (k QueryKey) Enabled() bool {
	switch k.Kind {
	case KindJobItem:
		return ValidJobID(k.ID)
	case KindJobItems:
		return strings.TrimSpace(k.Text) != ""
	default:
		return false
	}
}

// String renders the key as "job-item/<id>" or "job-items/<text>".
func (k QueryKey) String() string {
	if k.Kind == KindJobItem {
		return "job-item/" + strconv.Itoa(k.ID)
	}
	return "job-items/" + k.Text
}

// QueryStatus is the lifecycle state of a cache entry.
type QueryStatus uint8

const (
	// StatusIdle means no request has been made for the key.
	StatusIdle QueryStatus = iota
	// StatusPending means a request is in flight.
	StatusPending
	// StatusSuccess means the last request returned data.
	StatusSuccess
	// StatusError means the last request failed.
	StatusError
)

func (s QueryStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// QueryResult is the snapshot of a cache entry handed to callers and subscribers.
//
// IsLoading is true while the first request for the key is in flight.
// IsFetching is true while any request is in flight, including a background
// refetch of stale data.
type QueryResult[T any] struct {
	Key           QueryKey
	Data          T
	Status        QueryStatus
	IsLoading     bool
	IsFetching    bool
	Err           error
	LastFetchedAt time.Time
}
