// ABOUTME: Document data model for published municipal legal acts
// ABOUTME: Defines Document, Type and DateRange with calendar date helpers

package document

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by documents and filters
const DateLayout = "2006-01-02"

// Type is the closed category of an administrative act
type Type string

const (
	Ordinance        Type = "PORTARIA"
	OrdinaryLaw      Type = "LEI_ORDINARIA"
	ComplementaryLaw Type = "LEI_COMPLEMENTAR"
	Decree           Type = "DECRETO"
)

// Types lists every document type in tab order
var Types = []Type{Ordinance, OrdinaryLaw, ComplementaryLaw, Decree}

// ParseType maps a source label onto a Type. Unknown labels become Ordinance.
func ParseType(s string) Type {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Ordinance, OrdinaryLaw, ComplementaryLaw, Decree:
		return t
	default:
		return Ordinance
	}
}

// Valid reports whether t is one of the four enumerated types
func (t Type) Valid() bool {
	switch t {
	case Ordinance, OrdinaryLaw, ComplementaryLaw, Decree:
		return true
	}
	return false
}

// Label returns the plural display label used on tabs and stats
func (t Type) Label() string {
	switch t {
	case Ordinance:
		return "Portarias"
	case OrdinaryLaw:
		return "Leis Ordinárias"
	case ComplementaryLaw:
		return "Leis Complementares"
	case Decree:
		return "Decretos"
	}
	return string(t)
}

// Document represents a single published administrative record
type Document struct {
	ID          string `json:"id"`          // Unique identifier
	Type        Type   `json:"type"`        // Act category
	Number      string `json:"number"`      // Official reference, e.g. "001/2024"
	Title       string `json:"title"`       // Display title
	Description string `json:"description"` // Free-text summary
	Date        string `json:"date"`        // Issuance date (YYYY-MM-DD)
	URL         string `json:"url"`         // Source PDF reference
}

// Day parses the document date. ok is false when the date is not YYYY-MM-DD.
func (d Document) Day() (time.Time, bool) {
	return ParseDate(d.Date)
}

// DateRange holds inclusive date bounds. A nil bound is unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether day falls inside the range, bounds inclusive
func (r DateRange) Contains(day time.Time) bool {
	if r.From != nil && day.Before(*r.From) {
		return false
	}
	if r.To != nil && day.After(*r.To) {
		return false
	}
	return true
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseRange builds a DateRange from two optional YYYY-MM-DD strings.
// Empty or malformed values leave the bound open.
func ParseRange(from, to string) DateRange {
	var r DateRange
	if t, ok := ParseDate(from); ok {
		r.From = &t
	}
	if t, ok := ParseDate(to); ok {
		r.To = &t
	}
	return r
}

// FormatBound renders a bound as YYYY-MM-DD, or "" when unset
func FormatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
