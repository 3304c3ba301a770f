package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultUserAgent   = "casecrawl/1.0 (+https://github.com/nao1215/casecrawl)"
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB
	acceptHeader       = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage     = "en-US,en;q=0.5"
)

// Fetcher retrieves the body of a single page.
// Implementations return an error wrapping ErrUnexpectedStatus for any
// response other than 200 OK.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is a Fetcher backed by a resty client.
// It never retries: a failed request is reported to the caller as is.
type HTTPFetcher struct {
	client *resty.Client

	// maxBodySize caps the number of body bytes read per response.
	maxBodySize int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables the timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client.SetTimeout(d)
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
// Non-positive values keep the default.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithTransport replaces the underlying HTTP transport.
func WithTransport(rt http.RoundTripper) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client.SetTransport(rt)
	}
}

// NewFetcher creates an HTTPFetcher. Without options requests carry the
// default User-Agent, have no timeout and read at most 10MB per body.
func NewFetcher(opts ...FetcherOption) *HTTPFetcher {
	client := resty.New().
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept", acceptHeader).
		SetHeader("Accept-Language", acceptLanguage).
		SetTimeout(0)

	f := &HTTPFetcher{
		client:      client,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a GET request for pageURL and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if pageURL == "" {
		return nil, ErrEmptyURL
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(body, f.maxBodySize))
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, pageURL, resp.StatusCode())
	}

	data, err := io.ReadAll(io.LimitReader(body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", pageURL, err)
	}
	return data, nil
}
