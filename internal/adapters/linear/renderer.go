// Package linear renders job listings and details as plain text for non-interactive output.
package linear

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/ui/output"
	"go.trai.ch/jobsync/internal/ui/style"
)

// Renderer writes job data line by line to stdout.
type Renderer struct {
	stdout io.Writer
	output *termenv.Output
}

// NewRenderer creates a renderer writing to stdout. A nil stdout selects os.Stdout.
func NewRenderer(stdout io.Writer) *Renderer {
	return NewRendererWithProfile(stdout, output.ColorProfileANSI)
}

// NewRendererWithProfile creates a renderer whose colors follow profileFn.
func NewRendererWithProfile(stdout io.Writer, profileFn func() termenv.Profile) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Renderer{
		stdout: stdout,
		output: output.NewWithProfile(stdout, profileFn),
	}
}

// Marker reports whether a job id is bookmarked.
type Marker func(id int) bool

// RenderPage writes one page of search results.
func (r *Renderer) RenderPage(searchText string, sortBy domain.SortBy, page domain.Page, marked Marker) {
	if page.TotalItems == 0 {
		r.printf("No results for %q\n", searchText)
		return
	}

	r.printf("%s for %q %s\n",
		r.bold(plural(page.TotalItems, "result")),
		searchText,
		r.dim(fmt.Sprintf("(sorted by %s, page %d of %d)", sortBy, page.Number, page.TotalPages)),
	)
	r.printf("\n")
	for _, item := range page.Items {
		r.renderListItem(item, marked)
	}
}

// RenderJobItem writes the full details of a job item.
func (r *Renderer) RenderJobItem(item domain.JobItemExpanded, bookmarked bool) {
	r.printf("%s %s %s\n", r.accent("#"+strconv.Itoa(item.ID)), r.bold(item.Title), r.mark(bookmarked))
	r.printf("%s\n", r.dim(joinNonEmpty(" · ", item.Company, item.Location, daysAgo(item.DaysAgo))))

	if item.Salary != "" {
		r.printf("Salary:   %s\n", item.Salary)
	}
	if item.Duration != "" {
		r.printf("Duration: %s\n", item.Duration)
	}
	if item.Description != "" {
		r.printf("\n%s\n", item.Description)
	}
	r.renderList("Qualifications", item.Qualifications)
	r.renderList("Reviews", item.Reviews)
	if item.CompanyURL != "" {
		r.printf("\n%s %s\n", r.dim("Company:"), item.CompanyURL)
	}
}

// RenderBookmarks writes the bookmarked ids, or their resolved items when any are given.
func (r *Renderer) RenderBookmarks(ids []int, items []domain.JobItemExpanded) {
	if len(ids) == 0 {
		r.printf("No bookmarks yet\n")
		return
	}

	r.printf("%s\n", r.bold(plural(len(ids), "bookmark")))
	if len(items) == 0 {
		for _, id := range ids {
			r.printf("%s %s\n", r.mark(true), strconv.Itoa(id))
		}
		return
	}

	resolved := make(map[int]bool, len(items))
	for _, item := range items {
		resolved[item.ID] = true
		r.renderListItem(item.JobItem, func(int) bool { return true })
	}
	for _, id := range ids {
		if !resolved[id] {
			r.printf("%s %s %s\n", r.mark(true), r.accent("#"+strconv.Itoa(id)), r.dim("unavailable"))
		}
	}
}

// RenderToggle reports the result of a bookmark change.
func (r *Renderer) RenderToggle(id int, bookmarked bool) {
	if bookmarked {
		r.printf("%s bookmarked #%d\n", r.mark(true), id)
		return
	}
	r.printf("%s removed bookmark #%d\n", r.mark(false), id)
}

func (r *Renderer) renderListItem(item domain.JobItem, marked Marker) {
	bookmarked := marked != nil && marked(item.ID)
	r.printf("%s %s %s\n", r.mark(bookmarked), r.accent(fmt.Sprintf("#%-6d", item.ID)), item.Title)
	r.printf("  %s\n", r.dim(joinNonEmpty(" · ",
		item.Company,
		daysAgo(item.DaysAgo),
		"relevance "+strconv.Itoa(item.RelevanceScore),
	)))
}

func (r *Renderer) renderList(title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	r.printf("\n%s\n", r.bold(title+":"))
	for _, e := range entries {
		r.printf("  - %s\n", e)
	}
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stdout, format, args...)
}

func (r *Renderer) mark(bookmarked bool) string {
	if bookmarked {
		return r.output.String(style.Bookmarked).Foreground(r.output.Color(string(style.Yellow))).String()
	}
	return r.output.String(style.NotBookmarked).Foreground(r.output.Color(string(style.Slate))).String()
}

func (r *Renderer) accent(s string) string {
	return r.output.String(s).Foreground(r.output.Color(string(style.Accent))).String()
}

func (r *Renderer) dim(s string) string {
	return r.output.String(s).Foreground(r.output.Color(string(style.Slate))).String()
}

func (r *Renderer) bold(s string) string {
	return r.output.String(s).Bold().String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func daysAgo(days int) string {
	if days <= 0 {
		return "new"
	}
	return strconv.Itoa(days) + "d ago"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
