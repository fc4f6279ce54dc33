// Package server implements the gazette HTTP listing service
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/nainya/gazette/internal/logger"
	"github.com/nainya/gazette/internal/metrics"
	"github.com/nainya/gazette/pkg/document"
	"github.com/nainya/gazette/pkg/listing"
)

// Loader supplies the document collection for one page load
type Loader interface {
	Fetch(ctx context.Context) []document.Document
}

// Server serves the listing page, the JSON API and PDF downloads
type Server struct {
	loader  Loader
	pdfs    fs.FS
	log     *logger.Logger
	metrics *metrics.Metrics
	page    *pageRenderer
}

// Options configures a Server
type Options struct {
	Loader  Loader
	PDFDir  string // Directory holding <filename>.pdf artifacts
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// NewServer creates a new HTTP server instance
func NewServer(opts Options) (*Server, error) {
	if opts.Loader == nil {
		return nil, errors.New("server: loader is required")
	}

	page, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var pdfs fs.FS
	if opts.PDFDir != "" {
		pdfs = os.DirFS(opts.PDFDir)
	}

	return &Server{
		loader:  opts.Loader,
		pdfs:    pdfs,
		log:     log,
		metrics: opts.Metrics,
		page:    page,
	}, nil
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", s.instrument("/", s.handlePage))
	mux.Handle("GET /api/documents", s.instrument("/api/documents", s.handleList))
	mux.Handle("GET /api/documents/{id}", s.instrument("/api/documents/{id}", s.handleGet))
	mux.Handle("GET "+document.PDFPrefix+"{file}", s.instrument(document.PDFPrefix, s.handleDownload))

	return mux
}

// ========== Listing ==========

// view runs one fetch-then-derive pass for the request
func (s *Server) view(r *http.Request) listing.View {
	docs := s.loader.Fetch(r.Context())
	state := listing.FromQuery(r.URL.Query())
	v := listing.Build(docs, state)

	if s.metrics != nil {
		s.metrics.RecordListingView(string(v.State.Tab), v.Filtered)
	}
	return v
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v := s.view(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.page.render(w, v); err != nil {
		s.log.HTTPLogger("/").Error("render failed").Err(err).Send()
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// APIDocument is a document with its derived download path
type APIDocument struct {
	document.Document
	Download string `json:"download"`
}

func newAPIDocument(d document.Document) APIDocument {
	return APIDocument{Document: d, Download: document.PDFPath(d.Filename())}
}

// ListResponse is the JSON body of GET /api/documents
type ListResponse struct {
	Items        []APIDocument  `json:"items"`
	Total        int            `json:"total"`
	Filtered     int            `json:"filtered"`
	ByType       map[string]int `json:"by_type"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	ItemsPerPage int            `json:"items_per_page"`
}

// NewListResponse converts a view into its JSON shape
func NewListResponse(v listing.View) ListResponse {
	items := make([]APIDocument, len(v.Items))
	for i, d := range v.Items {
		items[i] = newAPIDocument(d)
	}
	byType := make(map[string]int, len(v.ByType))
	for t, n := range v.ByType {
		byType[string(t)] = n
	}
	return ListResponse{
		Items:        items,
		Total:        v.Total,
		Filtered:     v.Filtered,
		ByType:       byType,
		Page:         v.Page(),
		TotalPages:   v.TotalPages,
		ItemsPerPage: v.ItemsPerPage,
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewListResponse(s.view(r)))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	coll := document.NewCollection(s.loader.Fetch(r.Context()))

	doc, err := coll.Get(r.PathValue("id"))
	if errors.Is(err, document.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, newAPIDocument(doc))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.HTTPLogger("json").Error("encode failed").Err(err).Send()
	}
}

// ========== Downloads ==========

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	if !validPDFName(name) {
		s.recordDownload("rejected")
		http.NotFound(w, r)
		return
	}
	if s.pdfs == nil {
		s.recordDownload("missing")
		http.NotFound(w, r)
		return
	}

	info, err := fs.Stat(s.pdfs, name)
	if err != nil || info.IsDir() {
		s.recordDownload("missing")
		http.NotFound(w, r)
		return
	}

	s.recordDownload("served")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFileFS(w, r, s.pdfs, name)
}

// validPDFName accepts a single path element ending in .pdf
func validPDFName(name string) bool {
	return name != "" &&
		strings.HasSuffix(name, ".pdf") &&
		path.Base(name) == name &&
		!strings.ContainsAny(name, `/\`) &&
		fs.ValidPath(name)
}

func (s *Server) recordDownload(result string) {
	if s.metrics != nil {
		s.metrics.RecordDownload(result)
	}
}

// ========== Middleware ==========

// statusRecorder captures the response code for metrics and logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request metrics and logging
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.metrics != nil {
			s.metrics.HTTPRequestsInFlight.Inc()
			defer s.metrics.HTTPRequestsInFlight.Dec()
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		duration := time.Since(start)
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(route, strconv.Itoa(rec.status), duration)
		}
		s.log.LogHTTPRequest(r.Method, r.URL.Path, rec.status, duration)
	})
}
