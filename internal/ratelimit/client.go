package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rileyhilliard/grlm/internal/errors"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUserAgent is sent with every request; GitHub rejects requests without one.
	DefaultUserAgent = "grlm"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 1 << 20
)

// rateJSON is one bucket as encoded by the API.
type rateJSON struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

func (r *rateJSON) snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		Limit:     r.Limit,
		Remaining: r.Remaining,
		ResetAt:   time.Unix(r.Reset, 0),
	}
}

// rateLimitResponse mirrors the body of GET /rate_limit.
type rateLimitResponse struct {
	Resources struct {
		Core    *rateJSON `json:"core"`
		Search  *rateJSON `json:"search"`
		GraphQL *rateJSON `json:"graphql"`
	} `json:"resources"`
	Rate *rateJSON `json:"rate"`
}

// apiError is the error body GitHub returns with non-2xx responses.
type apiError struct {
	Message string `json:"message"`
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Client fetches rate limit status from the GitHub API.
type Client struct {
	baseURL    string
	userAgent  string
	resource   Resource
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (e.g. GitHub Enterprise).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithResource selects which bucket Fetch reports.
func WithResource(r Resource) Option {
	return func(c *Client) {
		if r != "" {
			c.resource = r
		}
	}
}

// NewClient creates a client for the public API, monitoring the core bucket.
// Timeouts are taken from the context passed to each call.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		resource:   ResourceCore,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resource returns the bucket reported by Fetch.
func (c *Client) Resource() Resource {
	return c.resource
}

// Fetch performs one request and returns the snapshot of the configured resource.
func (c *Client) Fetch(ctx context.Context, auth AuthMode) (Snapshot, error) {
	q, err := c.FetchAll(ctx, auth)
	if err != nil {
		return Snapshot{}, err
	}
	if !q.Has(c.resource) {
		return Snapshot{}, errors.New(errors.ErrDecode,
			fmt.Sprintf("Rate limit response has no %s quota", c.resource),
			"Pick another --resource, or check that --api-url points at a GitHub API root")
	}
	return q.Pick(c.resource), nil
}

// FetchAll performs one request and returns every bucket.
func (c *Client) FetchAll(ctx context.Context, auth AuthMode) (Quotas, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate_limit", nil)
	if err != nil {
		return Quotas{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid API URL: "+c.baseURL,
			"Use a full URL such as https://api.github.com")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	auth.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quotas{}, errors.WrapWithCode(err, errors.ErrFetch,
			"Rate limit request failed",
			"Check your network connection")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Quotas{}, errors.WrapWithCode(err, errors.ErrFetch,
			"Failed to read rate limit response",
			"")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quotas{}, statusError(resp.StatusCode, body)
	}

	var payload rateLimitResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Quotas{}, errors.WrapWithCode(err, errors.ErrDecode,
			"Rate limit response is not valid JSON",
			"Check that --api-url points at a GitHub API root")
	}

	core := payload.Resources.Core
	if core == nil {
		core = payload.Rate
	}
	if core == nil {
		return Quotas{}, errors.New(errors.ErrDecode,
			"Rate limit response has no core quota",
			"Check that --api-url points at a GitHub API root")
	}

	q := Quotas{
		Core:    core.snapshot(),
		Search:  payload.Resources.Search.snapshot(),
		GraphQL: payload.Resources.GraphQL.snapshot(),
	}
	if payload.Resources.Search == nil {
		q.Missing = append(q.Missing, ResourceSearch)
	}
	if payload.Resources.GraphQL == nil {
		q.Missing = append(q.Missing, ResourceGraphQL)
	}
	return q, nil
}

// statusError builds the structured error for a non-2xx response.
func statusError(code int, body []byte) error {
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	se := &StatusError{StatusCode: code, Message: apiErr.Message}

	if code == http.StatusUnauthorized {
		return errors.WrapWithCode(se, errors.ErrAuth,
			"GitHub rejected the credentials",
			"Check --login/--password or --access-token")
	}
	return errors.WrapWithCode(se, errors.ErrFetch,
		"Rate limit request failed",
		"")
}
