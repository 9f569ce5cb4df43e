package domain

import (
	"strconv"
	"strings"
)

// ActiveID is the nullable id of the selected job item.
// The zero value is the null selection.
type ActiveID struct {
	ID    int
	Valid bool
}

// NoActiveID is the null selection.
var NoActiveID = ActiveID{}

// SomeActiveID returns a valid selection for id.
func SomeActiveID(id int) ActiveID {
	return ActiveID{ID: id, Valid: true}
}

// String renders the id, or "none" for the null selection.
func (a ActiveID) String() string {
	if !a.Valid {
		return "none"
	}
	return strconv.Itoa(a.ID)
}

// ParseFragment derives the active id from a URL fragment.
// A leading "#" or "#/" is stripped; the remainder must be a positive base-10
// integer, anything else is the null selection. Whether the job exists is not
// checked here.
func ParseFragment(fragment string) ActiveID {
	rest := fragment
	if after, ok := strings.CutPrefix(rest, "#"); ok {
		rest = strings.TrimPrefix(after, "/")
	}

	id, err := strconv.Atoi(rest)
	if err != nil || !ValidJobID(id) {
		return NoActiveID
	}
	return SomeActiveID(id)
}

// FragmentFor returns the canonical fragment "#/<id>" selecting id.
func FragmentFor(id int) string {
	return "#/" + strconv.Itoa(id)
}
