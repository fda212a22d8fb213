// Package peopleapi is a client for the people-search HTTP API.
//
// The API exposes two GET endpoints, /api/search/{name} and
// /api/user/{username}. Both answer with the envelope
//
//	{"success": bool, "data": ..., "message": "..."}
//
// and nothing beyond the success flag is validated.
package peopleapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/acgh213/peoplefinder/internal/metrics"
	"github.com/acgh213/peoplefinder/internal/people"
)

const (
	EndpointSearch = "search"
	EndpointUser   = "user"

	maxResponseBytes = 4 << 20
)

var (
	// ErrUnexpectedStatus is returned for a non-2xx response without a
	// readable envelope.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrNoData is returned when a successful envelope has no data.
	ErrNoData = errors.New("response has no data")
)

// APIError is a response with success=false.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request rejected", e.Endpoint)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client calls the people API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches every result for name along with the server's paging
// metadata.
func (c *Client) Search(ctx context.Context, name string) (*people.SearchResult, error) {
	var res people.SearchResult
	if err := c.get(ctx, EndpointSearch, name, &res); err != nil {
		return nil, err
	}
	for i := range res.Results {
		res.Results[i] = res.Results[i].Unescape()
	}
	return &res, nil
}

// User fetches the detailed profile for username.
func (c *Client) User(ctx context.Context, username string) (*people.DetailedPerson, error) {
	var p people.DetailedPerson
	if err := c.get(ctx, EndpointUser, username, &p); err != nil {
		return nil, err
	}
	if p.Username == "" {
		p.Username = username
	}
	p = p.Unescape()
	return &p, nil
}

func (c *Client) get(ctx context.Context, endpoint, segment string, dst any) (err error) {
	start := time.Now()
	defer func() {
		metrics.APICallDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		outcome := "ok"
		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			outcome = "rejected"
		case err != nil:
			outcome = "error"
			c.logger.WarnContext(ctx, "people api call failed", "endpoint", endpoint, "error", err)
		}
		metrics.APICallsTotal.WithLabelValues(endpoint, outcome).Inc()
	}()

	u := c.baseURL + "/api/" + endpoint + "/" + url.PathEscape(segment)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("%s: %w: %d", endpoint, ErrUnexpectedStatus, resp.StatusCode)
		}
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	if !env.Success {
		return &APIError{Endpoint: endpoint, Message: env.Message}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%s: %w", endpoint, ErrNoData)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("decode %s data: %w", endpoint, err)
	}
	return nil
}
