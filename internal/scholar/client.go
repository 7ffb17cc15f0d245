// Package scholar fetches author metrics and per-publication citation
// counts from Google Scholar through the SerpApi search API.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtobolski/portfolio/internal/record"
)

const (
	// BaseURL is the SerpApi search endpoint.
	BaseURL = "https://serpapi.com/search.json"

	// Engine is the SerpApi engine serving author profiles.
	Engine = "google_scholar_author"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit keeps pagination well under SerpApi's hourly throughput.
	RateLimit = 2.0

	// DefaultLanguage is the hl parameter used when none is given.
	DefaultLanguage = "en"

	// MaxPages bounds pagination in case next links loop.
	MaxPages = 100
)

// Client is a rate-limited HTTP client for the SerpApi Scholar author engine.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	now        func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithClock sets the time source used for document dates.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a SerpApi client. SERPAPI_API_KEY is used unless
// WithAPIKey overrides it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		now:        time.Now,
	}

	if key := os.Getenv("SERPAPI_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ProfileURL returns the public Scholar profile link for an author.
func ProfileURL(authorID, hl string) string {
	if hl == "" {
		hl = DefaultLanguage
	}
	q := url.Values{"hl": {hl}, "user": {authorID}}
	return "https://scholar.google.com/citations?" + q.Encode()
}

// FetchMetrics reads the author's citation table.
func (c *Client) FetchMetrics(ctx context.Context, authorID, hl string) (*Metrics, error) {
	if hl == "" {
		hl = DefaultLanguage
	}
	u, err := c.authorURL(authorID, hl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	m := parseCitedByTable(resp.CitedBy.Table)
	m.Source = Source
	m.AuthorID = authorID
	m.ProfileURL = ProfileURL(authorID, hl)
	m.LastUpdated = c.now().Format(record.DateLayout)
	m.Raw = RawTrace{
		SearchMetadata:   resp.SearchMetadata,
		SearchParameters: resp.SearchParameters,
	}
	return m, nil
}

// FetchArticles reads every article on the author's profile, following
// pagination until SerpApi stops returning a next link.
func (c *Client) FetchArticles(ctx context.Context, authorID string) (*Publications, error) {
	next, err := c.authorURL(authorID, DefaultLanguage, url.Values{"start": {"0"}})
	if err != nil {
		return nil, err
	}

	doc := &Publications{
		Source:      Source,
		AuthorID:    authorID,
		ProfileURL:  ProfileURL(authorID, DefaultLanguage),
		GeneratedOn: c.now().Format("2006-01-02"),
		Items:       []Article{},
	}

	for page := 0; next != ""; page++ {
		if page >= MaxPages {
			return nil, fmt.Errorf("%w: more than %d pages", ErrInvalidResponse, MaxPages)
		}

		resp, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, a := range resp.Articles {
			item := Article{
				Title:       a.Title,
				Link:        a.Link,
				Year:        a.Year,
				Authors:     a.Authors,
				Publication: a.Publication,
			}
			if a.CitedBy != nil {
				item.CitedBy = a.CitedBy.Value
			}
			doc.Items = append(doc.Items, item)
		}

		next = ""
		if resp.Pagination.Next != "" {
			if next, err = c.withKey(resp.Pagination.Next); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

func (c *Client) authorURL(authorID, hl string, extra url.Values) (string, error) {
	if authorID == "" {
		return "", fmt.Errorf("author ID is required")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	q.Set("engine", Engine)
	q.Set("author_id", authorID)
	q.Set("hl", hl)
	for k, v := range extra {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return c.withKey(u.String())
}

// withKey adds the API key to a URL. SerpApi's next links omit it.
func (c *Client) withKey(raw string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: SERPAPI_API_KEY is not set", ErrAuthError)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: bad URL %q: %v", ErrInvalidResponse, raw, err)
	}
	q := u.Query()
	if q.Get("api_key") == "" {
		q.Set("api_key", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) (*authorResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	if err := checkHTTPErrors(resp, body); err != nil {
		return nil, err
	}

	var out authorResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.Error != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	return &out, nil
}
