// ABOUTME: Data access for the document listing: fetch, normalize, fall back
// ABOUTME: Never fails outward; any upstream problem yields the built-in dataset

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nainya/gazette/pkg/document"
)

// DefaultEndpoint is the upstream API queried on every page load
const DefaultEndpoint = "http://localhost:3001/documento"

// DefaultUserAgent is sent with every upstream request
const DefaultUserAgent = "gazette/1.0"

// HTTPClient is the subset of *http.Client used by Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Origin tells where a result came from. It is reported to logs and metrics
// only; callers rendering documents never branch on it.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Result is the outcome of one load
type Result struct {
	Documents []document.Document
	Origin    Origin
	Err       error         // Cause of a fallback, nil for live data
	Dropped   int           // Elements rejected during normalization
	Duration  time.Duration // Time spent on the upstream call
}

// Observer receives load outcomes and rejected elements
type Observer interface {
	ObserveLoad(res Result)
	ObserveDrop(index int, err error)
}

// Config holds configuration for a Client
type Config struct {
	// Endpoint is the URL answering GET with a JSON array
	Endpoint string

	// Timeout bounds one upstream call. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond paces upstream calls. Zero disables pacing.
	RequestsPerSecond float64

	// Strict drops elements missing number or date instead of defaulting
	Strict bool

	// HTTPClient performs requests. If nil, http.DefaultClient is used.
	HTTPClient HTTPClient

	// UserAgent is the User-Agent header sent with requests
	UserAgent string

	// Now supplies the default date for undated elements
	Now func() time.Time
}

// DefaultConfig returns a Config pointing at DefaultEndpoint
func DefaultConfig() Config {
	return Config{
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
	}
}

// Client loads the document collection
type Client struct {
	endpoint   string
	timeout    time.Duration
	strict     bool
	httpClient HTTPClient
	userAgent  string
	now        func() time.Time
	limiter    *rate.Limiter
	observer   Observer
}

// NewClient creates a Client. A nil observer is allowed.
func NewClient(cfg Config, observer Observer) *Client {
	c := &Client{
		endpoint:   cfg.Endpoint,
		timeout:    cfg.Timeout,
		strict:     cfg.Strict,
		httpClient: cfg.HTTPClient,
		userAgent:  cfg.UserAgent,
		now:        cfg.Now,
		observer:   observer,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.now == nil {
		c.now = time.Now
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// Endpoint returns the upstream URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch returns the document collection, falling back to the built-in
// dataset on any failure.
func (c *Client) Fetch(ctx context.Context) []document.Document {
	return c.Load(ctx).Documents
}

// Load is Fetch with the outcome details attached
func (c *Client) Load(ctx context.Context) Result {
	start := time.Now()
	docs, dropped, err := c.fetch(ctx)

	res := Result{
		Documents: docs,
		Origin:    OriginLive,
		Dropped:   dropped,
		Duration:  time.Since(start),
	}
	if err != nil {
		res = Result{
			Documents: document.Fallback(),
			Origin:    OriginFallback,
			Err:       err,
			Duration:  res.Duration,
		}
	}

	if c.observer != nil {
		c.observer.ObserveLoad(res)
	}
	return res
}

func (c *Client) fetch(ctx context.Context) ([]document.Document, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request for %s: %w", c.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return c.decode(body)
}

// decode parses a JSON array and normalizes each element independently
func (c *Client) decode(body []byte) ([]document.Document, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, 0, fmt.Errorf("failed to decode document array: %w", err)
	}
	if elems == nil {
		return nil, 0, ErrNotArray
	}

	opts := document.NormalizeOptions{Now: c.now, Strict: c.strict}
	docs := make([]document.Document, 0, len(elems))
	dropped := 0
	for i, raw := range elems {
		elem, err := decodeElement(raw)
		if err == nil {
			var doc document.Document
			doc, err = document.Normalize(elem, opts)
			if err == nil {
				docs = append(docs, doc)
				continue
			}
		}
		dropped++
		if c.observer != nil {
			c.observer.ObserveDrop(i, err)
		}
	}
	return docs, dropped, nil
}

func decodeElement(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var elem any
	if err := dec.Decode(&elem); err != nil {
		return nil, fmt.Errorf("failed to decode element: %w", err)
	}
	return elem, nil
}
