// ABOUTME: Filter state for the document listing and its reducer actions
// ABOUTME: Search, date and tab changes always return to the first page

package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nainya/gazette/pkg/document"
)

// Tab selects one document type, or every type with TabAll
type Tab string

// TabAll shows documents of every type
const TabAll Tab = "ALL"

// Tabs lists the tab bar in display order
var Tabs = []Tab{
	TabAll,
	Tab(document.Ordinance),
	Tab(document.OrdinaryLaw),
	Tab(document.ComplementaryLaw),
	Tab(document.Decree),
}

// ParseTab maps a query value onto a Tab. Unknown values select TabAll.
func ParseTab(s string) Tab {
	s = strings.ToUpper(strings.TrimSpace(s))
	if t := document.Type(s); t.Valid() {
		return Tab(t)
	}
	return TabAll
}

// Label returns the tab caption
func (t Tab) Label() string {
	if t == TabAll {
		return "Todos"
	}
	return document.Type(t).Label()
}

// State is the user-controlled filter state. It is a value; reducers return
// a new State and never modify their input.
type State struct {
	Search string
	Dates  document.DateRange
	Tab    Tab
	Page   int
}

// NewState returns the initial state: no filters, every type, first page
func NewState() State {
	return State{Tab: TabAll, Page: 1}
}

// Action is a discrete state transition
type Action interface {
	apply(State) State
}

// SetSearch replaces the search term
type SetSearch struct{ Term string }

// SetDateRange replaces both date bounds
type SetDateRange struct{ Range document.DateRange }

// SetTab switches the active type tab
type SetTab struct{ Tab Tab }

// SetPage moves to another page
type SetPage struct{ Page int }

func (a SetSearch) apply(s State) State {
	s.Search = a.Term
	s.Page = 1
	return s
}

func (a SetDateRange) apply(s State) State {
	s.Dates = a.Range
	s.Page = 1
	return s
}

func (a SetTab) apply(s State) State {
	s.Tab = a.Tab
	if s.Tab == "" {
		s.Tab = TabAll
	}
	s.Page = 1
	return s
}

func (a SetPage) apply(s State) State {
	s.Page = a.Page
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Reduce applies actions in order and returns the resulting state
func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		s = a.apply(s)
	}
	return s
}

// Query parameter names shared by the HTML form, page links and JSON API
const (
	ParamSearch = "q"
	ParamFrom   = "from"
	ParamTo     = "to"
	ParamTab    = "tab"
	ParamPage   = "page"
)

// FromQuery rebuilds a state from query parameters by dispatching the same
// actions the filter form and page controls produce. The page is applied
// last so an explicit page survives the resets.
func FromQuery(v url.Values) State {
	page, err := strconv.Atoi(v.Get(ParamPage))
	if err != nil {
		page = 1
	}
	return Reduce(NewState(),
		SetSearch{Term: v.Get(ParamSearch)},
		SetDateRange{Range: document.ParseRange(v.Get(ParamFrom), v.Get(ParamTo))},
		SetTab{Tab: ParseTab(v.Get(ParamTab))},
		SetPage{Page: page},
	)
}

// Query encodes the state as query parameters, omitting defaults
func (s State) Query() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if from := document.FormatBound(s.Dates.From); from != "" {
		v.Set(ParamFrom, from)
	}
	if to := document.FormatBound(s.Dates.To); to != "" {
		v.Set(ParamTo, to)
	}
	if s.Tab != "" && s.Tab != TabAll {
		v.Set(ParamTab, string(s.Tab))
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// Href returns the state as a relative link for path
func (s State) Href(path string) string {
	if q := s.Query().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}
