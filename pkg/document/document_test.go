// ABOUTME: Tests for the document model, fallback dataset and collection
// ABOUTME: Verifies type parsing, date ranges, filenames and lookups

package document

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"PORTARIA":         Ordinance,
		"LEI_ORDINARIA":    OrdinaryLaw,
		"lei_complementar": ComplementaryLaw,
		" DECRETO ":        Decree,
		"":                 Ordinance,
		"EDITAL":           Ordinance,
	}
	for in, want := range cases {
		if got := ParseType(in); got != want {
			t.Errorf("ParseType(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDateRangeInclusive(t *testing.T) {
	r := ParseRange("2024-03-05", "2024-03-20")

	for date, want := range map[string]bool{
		"2024-03-04": false,
		"2024-03-05": true,
		"2024-03-10": true,
		"2024-03-20": true,
		"2024-03-21": false,
	} {
		day, ok := ParseDate(date)
		if !ok {
			t.Fatalf("ParseDate(%s) failed", date)
		}
		if got := r.Contains(day); got != want {
			t.Errorf("Contains(%s) = %v, want %v", date, got, want)
		}
	}
}

func TestParseRangeIgnoresMalformedBounds(t *testing.T) {
	r := ParseRange("15/01/2024", "")
	if !r.IsZero() {
		t.Errorf("Expected open range, got from=%s to=%s", FormatBound(r.From), FormatBound(r.To))
	}
}

func TestDownloadFilename(t *testing.T) {
	got := DownloadFilename("1.234/2024", "2024-02-10")
	if got != "12342024-2024-02-10" {
		t.Errorf("Expected 12342024-2024-02-10, got %s", got)
	}

	if p := PDFPath(got); p != "/documentos/12342024-2024-02-10.pdf" {
		t.Errorf("Unexpected PDF path %s", p)
	}
}

func TestFallbackDataset(t *testing.T) {
	docs := Fallback()

	if len(docs) != 12 {
		t.Fatalf("Expected 12 fallback documents, got %d", len(docs))
	}
	if docs[0].ID != "1" || docs[0].Type != Ordinance {
		t.Errorf("Unexpected first document: %+v", docs[0])
	}

	// Callers get their own copy
	docs[0].Title = "changed"
	if Fallback()[0].Title == "changed" {
		t.Error("Fallback returned shared backing array")
	}
}

func TestCollection(t *testing.T) {
	c := NewCollection(Fallback())

	if c.Len() != 12 {
		t.Fatalf("Expected 12 documents, got %d", c.Len())
	}

	doc, err := c.Get("3")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Number != "456/2024" {
		t.Errorf("Expected 456/2024, got %s", doc.Number)
	}

	if _, err := c.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	counts := c.CountByType()
	want := map[Type]int{Ordinance: 4, OrdinaryLaw: 3, ComplementaryLaw: 2, Decree: 3}
	for typ, n := range want {
		if counts[typ] != n {
			t.Errorf("CountByType[%s] = %d, want %d", typ, counts[typ], n)
		}
	}
}
