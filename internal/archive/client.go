// Package archive talks to the Knowledge Ingester links API.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "ingester/1.0"

// RequestIDHeader carries a fresh UUID on every request.
const RequestIDHeader = "X-Request-ID"

// Client fetches and deletes records. It holds no record state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateLimit caps outgoing requests at rps per second with the given burst.
// A non-positive rps leaves requests unthrottled.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a client for the API rooted at baseURL, e.g. "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		userAgent:  defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the endpoint the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchAll returns every record in the order the server sent them.
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	url := c.baseURL + "/links/"
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: http.MethodGet, URL: url, StatusCode: resp.StatusCode}
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		c.logger.Warn("decoding links failed", "url", url, "error", err)
		return nil, &NetworkError{Op: http.MethodGet, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding body: %w", err)}
	}
	c.logger.Info("fetched links", "count", len(records))
	return records, nil
}

// Get returns a single record. A missing record yields a *NetworkError with NotFound() true.
func (c *Client) Get(ctx context.Context, id int) (Record, error) {
	url := c.linkURL(id)
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return Record{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Record{}, &NetworkError{Op: http.MethodGet, URL: url, StatusCode: resp.StatusCode}
	}

	var r Record
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Record{}, &NetworkError{Op: http.MethodGet, URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding body: %w", err)}
	}
	return r, nil
}

// DeleteByID removes one record on the server. Any 2xx status is success.
func (c *Client) DeleteByID(ctx context.Context, id int) error {
	url := c.linkURL(id)
	resp, err := c.do(ctx, http.MethodDelete, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: http.MethodDelete, URL: url, StatusCode: resp.StatusCode}
	}
	c.logger.Info("deleted link", "id", id)
	return nil
}

func (c *Client) linkURL(id int) string {
	return c.baseURL + "/links/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Op: method, URL: url, Err: err}
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "url", url, "request_id", requestID, "error", err)
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	c.logger.Log(ctx, level, "request done",
		"method", method,
		"url", url,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}
