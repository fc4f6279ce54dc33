// Integration tests for the gazette HTTP server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nainya/gazette/internal/metrics"
	"github.com/nainya/gazette/pkg/document"
	"github.com/nainya/gazette/pkg/source"
)

type stubLoader struct {
	docs  []document.Document
	calls atomic.Int32
}

func (l *stubLoader) Fetch(ctx context.Context) []document.Document {
	l.calls.Add(1)
	return l.docs
}

func setupTestServer(t *testing.T, loader Loader, pdfDir string) (*httptest.Server, *metrics.Metrics) {
	t.Helper()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	srv, err := NewServer(Options{Loader: loader, PDFDir: pdfDir, Metrics: m})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, m
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, string(body)
}

func countRows(body string) int {
	return strings.Count(body, `<article class="document"`)
}

func TestNewServerRequiresLoader(t *testing.T) {
	if _, err := NewServer(Options{}); err == nil {
		t.Error("Expected error without loader")
	}
}

func TestPageFirstPage(t *testing.T) {
	loader := &stubLoader{docs: document.Fallback()}
	ts, _ := setupTestServer(t, loader, "")

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML content type, got %s", ct)
	}

	if n := countRows(body); n != 5 {
		t.Errorf("Expected 5 rows on first page, got %d", n)
	}
	if !strings.Contains(body, `id="doc-12"`) {
		t.Error("Expected newest document first")
	}
	if !strings.Contains(body, "Portaria De Protocolo Sanitário de 14 de novembro de 2024") {
		t.Error("Expected formatted heading for document 12")
	}
	if !strings.Contains(body, `href="/documentos/0042024-2024-11-14.pdf" download="0042024-2024-11-14.pdf"`) {
		t.Error("Expected derived download link for document 12")
	}
	if !strings.Contains(body, `class="pagination"`) {
		t.Error("Expected pagination control")
	}
	if n := loader.calls.Load(); n != 1 {
		t.Errorf("Expected one fetch per page load, got %d", n)
	}
}

func TestPageLastPage(t *testing.T) {
	ts, _ := setupTestServer(t, &stubLoader{docs: document.Fallback()}, "")

	_, body := get(t, ts.URL+"/?page=3")
	if n := countRows(body); n != 2 {
		t.Errorf("Expected 2 rows on last page, got %d", n)
	}
	if !strings.Contains(body, "Mostrando 11–12 de 12") {
		t.Error("Expected range summary for last page")
	}
	if strings.Contains(body, `rel="next"`) {
		t.Error("Last page must not link to a next page")
	}
}

func TestPageClampsOutOfRange(t *testing.T) {
	ts, _ := setupTestServer(t, &stubLoader{docs: document.Fallback()}, "")

	_, body := get(t, ts.URL+"/?tab=DECRETO&page=4")
	if n := countRows(body); n != 3 {
		t.Errorf("Expected the clamped page with 3 decrees, got %d rows", n)
	}
}

func TestPageEmptyState(t *testing.T) {
	ts, _ := setupTestServer(t, &stubLoader{docs: document.Fallback()}, "")

	_, body := get(t, ts.URL+"/?q=inexistente")
	if !strings.Contains(body, EmptyMessage) {
		t.Error("Expected empty-state message")
	}
	if strings.Contains(body, `class="pagination"`) {
		t.Error("Pagination must be hidden when nothing matches")
	}
	if countRows(body) != 0 {
		t.Error("Expected no rows")
	}
}

func TestTabLinksResetPage(t *testing.T) {
	ts, _ := setupTestServer(t, &stubLoader{docs: document.Fallback()}, "")

	_, body := get(t, ts.URL+"/?q=lei&page=2")
	if !strings.Contains(body, `href="/?q=lei&amp;tab=DECRETO"`) {
		t.Error("Expected decree tab link keeping the search and dropping the page")
	}
	if !strings.Contains(body, `<a href="/?q=lei" class="active" aria-current="page">Todos</a>`) {
		t.Error("Expected active ALL tab")
	}
}

func TestListAPI(t *testing.T) {
	ts, m := setupTestServer(t, &stubLoader{docs: document.Fallback()}, "")

	resp, body := get(t, ts.URL+"/api/documents?tab=LEI_ORDINARIA")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var list ListResponse
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if list.Total != 12 || list.Filtered != 3 {
		t.Errorf("Expected total 12 filtered 3, got %d/%d", list.Total, list.Filtered)
	}
	if list.TotalPages != 1 || list.Page != 1 || list.ItemsPerPage != 5 {
		t.Errorf("Unexpected pagination: %+v", list)
	}
	if list.ByType["PORTARIA"] != 4 {
		t.Errorf("Expected 4 portarias in stats, got %d", list.ByType["PORTARIA"])
	}
	if len(list.Items) != 3 || list.Items[2].Download != "/documentos/12342024-2024-02-10.pdf" {
		t.Errorf("Unexpected items: %+v", list.Items)
	}

	if got := testutil.ToFloat64(m.ListingViewsTotal.WithLabelValues("LEI_ORDINARIA")); got != 1 {
		t.Errorf("Expected one listing view metric, got %v", got)
	}
}

func TestGetDocument(t *testing.T) {
	ts, _ := setupTestServer(t, &stubLoader{docs: document.Fallback()}, "")

	resp, body := get(t, ts.URL+"/api/documents/2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var doc APIDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if doc.Number != "1.234/2024" {
		t.Errorf("Expected number 1.234/2024, got %s", doc.Number)
	}

	resp, _ = get(t, ts.URL+"/api/documents/999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", resp.StatusCode)
	}
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	name := document.DownloadFilename("1.234/2024", "2024-02-10") + ".pdf"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("Failed to write PDF: %v", err)
	}

	ts, m := setupTestServer(t, &stubLoader{docs: document.Fallback()}, dir)

	resp, body := get(t, ts.URL+"/documentos/"+name)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if body != "%PDF-1.4 test" {
		t.Errorf("Unexpected body %q", body)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="12342024-2024-02-10.pdf"` {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	resp, _ = get(t, ts.URL+"/documentos/0012024-2024-01-15.pdf")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for missing PDF, got %d", resp.StatusCode)
	}

	resp, _ = get(t, ts.URL+"/documentos/notes.txt")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for non-PDF name, got %d", resp.StatusCode)
	}

	for result, want := range map[string]float64{"served": 1, "missing": 1, "rejected": 1} {
		if got := testutil.ToFloat64(m.DownloadsTotal.WithLabelValues(result)); got != want {
			t.Errorf("downloads{result=%s} = %v, want %v", result, got, want)
		}
	}
}

func TestValidPDFName(t *testing.T) {
	cases := map[string]bool{
		"0012024-2024-01-15.pdf": true,
		"":                       false,
		"file.txt":               false,
		"../secret.pdf":          false,
		"a/b.pdf":                false,
		`a\b.pdf`:                false,
	}
	for name, want := range cases {
		if got := validPDFName(name); got != want {
			t.Errorf("validPDFName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestFallbackWhenUpstreamFails(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer upstream.Close()

	m := metrics.NewMetrics(prometheus.NewRegistry())
	client := source.NewClient(source.Config{Endpoint: upstream.URL}, NewSourceObserver(nil, m))

	srv, err := NewServer(Options{Loader: client, Metrics: m})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	_, body := get(t, ts.URL+"/api/documents")
	var list ListResponse
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if list.Total != 12 {
		t.Errorf("Expected fallback dataset of 12, got %d", list.Total)
	}
	if got := testutil.ToFloat64(m.SourceLoadsTotal.WithLabelValues("fallback")); got != 1 {
		t.Errorf("Expected one fallback load recorded, got %v", got)
	}
}

func TestObservabilityHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.RecordSourceLoad("live", 0, 3, 0)

	var ready atomic.Bool
	h := NewObservabilityHandler(reg, func(ctx context.Context) error {
		if !ready.Load() {
			return errors.New("warming up")
		}
		return nil
	}, m.ServerStartTime)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp, body := get(t, ts.URL+"/health")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"healthy"`) {
		t.Errorf("Unexpected health response %d %s", resp.StatusCode, body)
	}

	resp, _ = get(t, ts.URL+"/ready")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 while not ready, got %d", resp.StatusCode)
	}
	ready.Store(true)
	resp, _ = get(t, ts.URL+"/ready")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 when ready, got %d", resp.StatusCode)
	}

	_, body = get(t, ts.URL+"/metrics")
	if !strings.Contains(body, "gazette_source_loads_total") {
		t.Error("Expected gazette metrics in exposition")
	}
}
