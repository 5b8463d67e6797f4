package neo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultCatalogURL is the application's asteroid listing endpoint,
	// sorted by close-approach epoch.
	DefaultCatalogURL = "http://localhost:5000/api/asteroids?sortBy=close_approach_data.0.epoch_date_close_approach&sortOrder=asc"

	// DefaultLimit is the number of records requested per fetch.
	DefaultLimit = 99

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes bounds the catalog payload size.
	maxBodyBytes = 32 << 20
)

// Fetcher retrieves asteroid catalogs over HTTP.
type Fetcher struct {
	client  *http.Client
	url     string
	limit   int
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithURL sets a custom catalog URL.
func WithURL(u string) FetcherOption {
	return func(f *Fetcher) {
		f.url = u
	}
}

// WithLimit sets the record limit query parameter. Zero or negative leaves
// the URL untouched.
func WithLimit(n int) FetcherOption {
	return func(f *Fetcher) {
		f.limit = n
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new catalog fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:     DefaultCatalogURL,
		limit:   DefaultLimit,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// FetchResult contains the result of a fetch operation.
type FetchResult struct {
	Records   []Record
	FetchedAt time.Time
	Duration  time.Duration
	Error     error
}

// Fetch retrieves and parses the asteroid catalog.
func (f *Fetcher) Fetch(ctx context.Context) FetchResult {
	start := time.Now()
	result := FetchResult{
		FetchedAt: start,
	}

	raw, err := f.fetchRaw(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}

	records, err := ParseCatalog(raw)
	if err != nil {
		result.Error = fmt.Errorf("parse catalog: %w", err)
		return result
	}
	result.Records = records

	return result
}

func (f *Fetcher) fetchRaw(ctx context.Context) ([]byte, error) {
	target, err := f.requestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-orbits/1.0 (NEO Orbit Visualization Tool)")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// requestURL applies the limit parameter to the configured URL.
func (f *Fetcher) requestURL() (string, error) {
	u, err := url.Parse(f.url)
	if err != nil {
		return "", fmt.Errorf("parse catalog URL: %w", err)
	}
	if f.limit > 0 {
		q := u.Query()
		q.Set("limit", strconv.Itoa(f.limit))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// URL returns the configured catalog URL.
func (f *Fetcher) URL() string {
	return f.url
}
