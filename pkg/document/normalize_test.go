// ABOUTME: Tests for source record normalization
// ABOUTME: Verifies alias precedence, defaults, stable ids and strict mode

package document

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
}

func decodeElem(t *testing.T, src string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("Failed to decode %s: %v", src, err)
	}
	return v
}

func TestNormalizeAliasedFields(t *testing.T) {
	elem := decodeElem(t, `{"tipo": "DECRETO", "numero": "9/2024", "data": "2024-01-01"}`)

	doc, err := Normalize(elem, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := Document{
		ID:     StableID("9/2024", "2024-01-01"),
		Type:   Decree,
		Number: "9/2024",
		Date:   "2024-01-01",
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePrimaryKeysWin(t *testing.T) {
	elem := decodeElem(t, `{
		"id": "a1", "_id": "b2",
		"type": "LEI_ORDINARIA", "tipo": "DECRETO",
		"number": "10/2024", "numero": "11/2024",
		"title": "Lei X", "titulo": "Outra",
		"description": "desc A", "descricao": "desc B",
		"date": "2024-05-05", "data": "2023-01-01",
		"url": "/a.pdf", "arquivo": "/b.pdf"
	}`)

	doc, err := Normalize(elem, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := Document{
		ID:          "a1",
		Type:        OrdinaryLaw,
		Number:      "10/2024",
		Title:       "Lei X",
		Description: "desc A",
		Date:        "2024-05-05",
		URL:         "/a.pdf",
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSkipsEmptyAlias(t *testing.T) {
	elem := decodeElem(t, `{"title": "", "nome": "Portaria Geral", "_id": 42, "link": "/c.pdf"}`)

	doc, err := Normalize(elem, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if doc.Title != "Portaria Geral" {
		t.Errorf("Expected title from 'nome', got %q", doc.Title)
	}
	if doc.ID != "42" {
		t.Errorf("Expected numeric _id rendered as \"42\", got %q", doc.ID)
	}
	if doc.URL != "/c.pdf" {
		t.Errorf("Expected url from 'link', got %q", doc.URL)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	doc, err := Normalize(map[string]any{}, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if doc.Type != Ordinance {
		t.Errorf("Expected default type PORTARIA, got %s", doc.Type)
	}
	if doc.Date != "2025-03-09" {
		t.Errorf("Expected today's date, got %s", doc.Date)
	}
	if doc.ID == "" {
		t.Error("Expected a synthesized id")
	}
	if doc.Number != "" || doc.Title != "" || doc.Description != "" || doc.URL != "" {
		t.Errorf("Expected empty text fields, got %+v", doc)
	}
}

func TestNormalizeUnknownTypeDefaultsToOrdinance(t *testing.T) {
	doc, err := Normalize(map[string]any{"type": "RESOLUCAO"}, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if doc.Type != Ordinance {
		t.Errorf("Expected PORTARIA, got %s", doc.Type)
	}
}

func TestNormalizeCreatedAtTimestamp(t *testing.T) {
	doc, err := Normalize(map[string]any{"created_at": "2024-06-01T12:30:00.000Z"}, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if doc.Date != "2024-06-01" {
		t.Errorf("Expected date prefix 2024-06-01, got %s", doc.Date)
	}
}

func TestStableIDAcrossFetches(t *testing.T) {
	elem := map[string]any{"numero": "7/2024", "data": "2024-02-02"}

	first, err := Normalize(elem, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	second, err := Normalize(elem, NormalizeOptions{Now: fixedNow})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("Expected stable id, got %s and %s", first.ID, second.ID)
	}
	if other := StableID("8/2024", "2024-02-02"); other == first.ID {
		t.Error("Expected distinct ids for distinct numbers")
	}
}

func TestNormalizeStrict(t *testing.T) {
	opts := NormalizeOptions{Now: fixedNow, Strict: true}

	_, err := Normalize(map[string]any{"data": "2024-01-01"}, opts)
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected ErrMissingField for missing number, got %v", err)
	}

	_, err = Normalize(map[string]any{"numero": "1/2024"}, opts)
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected ErrMissingField for missing date, got %v", err)
	}

	if _, err := Normalize(map[string]any{"numero": "1/2024", "data": "2024-01-01"}, opts); err != nil {
		t.Errorf("Expected complete record to pass, got %v", err)
	}
}

func TestNormalizeRejectsNonObject(t *testing.T) {
	for _, elem := range []any{"text", json.Number("3"), []any{}, nil} {
		if _, err := Normalize(elem, NormalizeOptions{}); !errors.Is(err, ErrNotObject) {
			t.Errorf("Normalize(%v): expected ErrNotObject, got %v", elem, err)
		}
	}
}
