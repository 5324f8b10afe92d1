package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Finder defines the catalog operations the screens consume. It is
// implemented by *Client and can be swapped for a fake in tests.
type Finder interface {
	Search(ctx context.Context, query string) ([]Volume, error)
	Popular(ctx context.Context) ([]Volume, error)
	Lookup(ctx context.Context, id string) (*Volume, error)
}

// Ensure Client implements Finder at compile time.
var _ Finder = (*Client)(nil)

// Client talks to the Google Books volumes API.
type Client struct {
	baseURL        *url.URL
	apiKey         string
	popularSubject string
	http           *http.Client
	userAgent      string
	log            zerolog.Logger
}

const (
	defaultBaseURL   = "https://www.googleapis.com/books/v1"
	defaultUserAgent = "hardback/0.1"
	requestTimeout   = 30 * time.Second

	searchMaxResults  = 20
	popularMaxResults = 15
)

// Options configure a Client. BaseURL must include the API version prefix;
// APIKey may be empty.
type Options struct {
	BaseURL        string
	APIKey         string
	PopularSubject string
	Logger         zerolog.Logger
}

// NewClient builds a Client for the given options.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(opts.PopularSubject)
	if subject == "" {
		subject = "subject:fiction"
	}
	return &Client{
		baseURL:        base,
		apiKey:         strings.TrimSpace(opts.APIKey),
		popularSubject: subject,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       opts.Logger,
	}, nil
}

// Search queries the catalog with free text. Callers are expected to trim
// the query and suppress blank input before calling. A query that matches
// nothing yields an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	return c.volumes(ctx, query, searchMaxResults, "")
}

// Popular fetches the curated shelf: a fixed subject filter ordered by
// relevance with a smaller result cap.
func (c *Client) Popular(ctx context.Context) ([]Volume, error) {
	return c.volumes(ctx, c.popularSubject, popularMaxResults, "relevance")
}

// Lookup fetches a single volume by its opaque id.
func (c *Client) Lookup(ctx context.Context, id string) (*Volume, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("volume id required")
	}
	var payload Volume
	if err := c.get(ctx, "volumes/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// volumes performs one list request. The search and popular variants differ
// only in query, cap, and ordering.
func (c *Client) volumes(ctx context.Context, query string, maxResults int, orderBy string) ([]Volume, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("maxResults", strconv.Itoa(maxResults))
	if orderBy != "" {
		values.Set("orderBy", orderBy)
	}
	var payload volumeListResponse
	if err := c.get(ctx, "volumes", values, &payload); err != nil {
		return nil, err
	}
	if payload.Items == nil {
		return []Volume{}, nil
	}
	return payload.Items, nil
}

// get performs one request against the API. The path is already escaped; the
// API key joins the query only when one is configured.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}
	reqURL := c.baseURL.String() + "/" + path
	if encoded := query.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("path", path).Err(err).Msg("volumes request failed")
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Str("path", path).Int("status", resp.StatusCode).Msg("volumes request rejected")
		return &StatusError{Code: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
