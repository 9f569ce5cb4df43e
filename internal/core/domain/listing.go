package domain

import (
	"cmp"
	"slices"
)

// SortBy selects the ordering of a job item list.
type SortBy string

const (
	// SortRelevant orders by relevance score, highest first.
	SortRelevant SortBy = "relevant"
	// SortRecent orders by posting age, newest first.
	SortRecent SortBy = "recent"
)

// ParseSortBy validates a sort name.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortRelevant, SortRecent:
		return SortBy(s), nil
	case "":
		return SortRelevant, nil
	default:
		return "", ErrInvalidSortBy
	}
}

// SortJobItems returns a sorted copy of items. The input is left untouched.
func SortJobItems(items []JobItem, by SortBy) []JobItem {
	sorted := slices.Clone(items)
	switch by {
	case SortRecent:
		slices.SortStableFunc(sorted, func(a, b JobItem) int {
			return cmp.Compare(a.DaysAgo, b.DaysAgo)
		})
	default:
		slices.SortStableFunc(sorted, func(a, b JobItem) int {
			return cmp.Compare(b.RelevanceScore, a.RelevanceScore)
		})
	}
	return sorted
}

// Page is one slice of a paginated list.
type Page struct {
	Items      []JobItem
	Number     int
	TotalPages int
	TotalItems int
}

// Paginate returns page number (1-based) of items with size entries per page.
// Out-of-range page numbers are clamped.
func Paginate(items []JobItem, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	number = max(1, min(number, max(pages, 1)))

	start := min((number-1)*size, total)
	end := min(start+size, total)

	return Page{
		Items:      items[start:end],
		Number:     number,
		TotalPages: pages,
		TotalItems: total,
	}
}
