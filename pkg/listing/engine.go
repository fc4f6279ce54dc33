// ABOUTME: Filter, sort and paginate engine for the document listing
// ABOUTME: Pure function of the collection and the current filter state

package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/nainya/gazette/pkg/document"
)

// ItemsPerPage is the fixed page size
const ItemsPerPage = 5

// View is everything a renderer needs for one page
type View struct {
	State        State                 // State with the page clamped
	Items        []document.Document   // Current page, newest first
	Total        int                   // Size of the unfiltered collection
	Filtered     int                   // Size of the filtered set
	ByType       map[document.Type]int // Counts over the unfiltered collection
	TotalPages   int                   // ceil(Filtered / ItemsPerPage)
	ItemsPerPage int
}

// Empty reports whether nothing matched the filters
func (v View) Empty() bool {
	return v.Filtered == 0
}

// Page returns the clamped current page
func (v View) Page() int {
	return v.State.Page
}

// Matches reports whether doc passes every filter in s
func Matches(doc document.Document, s State) bool {
	return matchesSearch(doc, strings.ToLower(s.Search)) &&
		matchesTab(doc, s.Tab) &&
		matchesDates(doc, s.Dates)
}

func matchesSearch(doc document.Document, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(doc.Title), term) ||
		strings.Contains(strings.ToLower(doc.Description), term) ||
		strings.Contains(strings.ToLower(doc.Number), term)
}

func matchesTab(doc document.Document, tab Tab) bool {
	return tab == "" || tab == TabAll || doc.Type == document.Type(tab)
}

func matchesDates(doc document.Document, r document.DateRange) bool {
	if r.IsZero() {
		return true
	}
	day, ok := doc.Day()
	if !ok {
		return false
	}
	return r.Contains(day)
}

// Filter returns the matching documents in input order
func Filter(docs []document.Document, s State) []document.Document {
	var out []document.Document
	for _, d := range docs {
		if Matches(d, s) {
			out = append(out, d)
		}
	}
	return out
}

// SortNewestFirst stably sorts docs by date, newest first. Documents with an
// unparseable date sort last.
func SortNewestFirst(docs []document.Document) {
	days := make(map[string]time.Time, len(docs))
	for _, d := range docs {
		if _, seen := days[d.Date]; !seen {
			day, _ := d.Day()
			days[d.Date] = day
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return days[docs[i].Date].After(days[docs[j].Date])
	})
}

// TotalPages returns ceil(n / ItemsPerPage)
func TotalPages(n int) int {
	return (n + ItemsPerPage - 1) / ItemsPerPage
}

// ClampPage bounds page to [1, max(totalPages, 1)]
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Build derives the filtered, sorted and paginated view of docs
func Build(docs []document.Document, s State) View {
	filtered := Filter(docs, s)
	SortNewestFirst(filtered)

	pages := TotalPages(len(filtered))
	s.Page = ClampPage(s.Page, pages)
	if s.Tab == "" {
		s.Tab = TabAll
	}

	start := (s.Page - 1) * ItemsPerPage
	end := min(start+ItemsPerPage, len(filtered))

	items := make([]document.Document, 0, end-start)
	items = append(items, filtered[start:end]...)

	return View{
		State:        s,
		Items:        items,
		Total:        len(docs),
		Filtered:     len(filtered),
		ByType:       document.NewCollection(docs).CountByType(),
		TotalPages:   pages,
		ItemsPerPage: ItemsPerPage,
	}
}
