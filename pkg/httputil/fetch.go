package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pgraphlab/pgraph/pkg/cache"
	"github.com/pgraphlab/pgraph/pkg/errors"
	"github.com/pgraphlab/pgraph/pkg/observability"
)

// httpNamespace scopes fetcher entries inside a shared cache.
const httpNamespace = "fetch"

// maxResponseBytes caps remote problem files. Real problem definitions
// are a few kilobytes; anything near this limit is not one.
const maxResponseBytes = 32 << 20

// Fetcher retrieves remote problem files over HTTP with retry and
// optional response caching. The zero value is not usable; construct
// with [NewFetcher].
type Fetcher struct {
	client   *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	attempts int
	delay    time.Duration
}

// NewFetcher creates a fetcher with default retry settings.
// A nil cache disables response caching.
func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		cache:    c,
		keyer:    cache.NewDefaultKeyer(),
		ttl:      cache.TTLRemote,
		attempts: 3,
		delay:    time.Second,
	}
}

// Get fetches the URL, consulting the response cache first.
//
// Transport errors and 5xx responses are retried with backoff. A 404
// maps to [errors.ErrCodeFileNotFound], other non-2xx statuses to
// [errors.ErrCodeNetwork]. The returned bytes are the raw response body.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := f.keyer.HTTPKey(httpNamespace, rawURL)
	if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "http")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "http")

	var body []byte
	err := Retry(ctx, f.attempts, f.delay, func() error {
		var err error
		body, err = f.fetch(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, key, body, f.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(body))
	}
	return body, nil
}

// fetch performs one GET round trip and classifies the outcome.
func (f *Fetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	resp, err := f.client.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 500:
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "fetch %s: %s", rawURL, resp.Status)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFileNotFound, "fetch %s: %s", rawURL, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL)}
	}
	if len(body) > maxResponseBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fetch %s: response exceeds %d bytes", rawURL, maxResponseBytes)
	}
	return body, nil
}

// WithTTL returns a copy of the fetcher with a different cache TTL.
func (f *Fetcher) WithTTL(ttl time.Duration) *Fetcher {
	clone := *f
	clone.ttl = ttl
	return &clone
}

// WithClient returns a copy of the fetcher using the given HTTP client.
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	clone := *f
	if client != nil {
		clone.client = client
	}
	return &clone
}

// String identifies the fetcher configuration in debug logs.
func (f *Fetcher) String() string {
	return fmt.Sprintf("httputil.Fetcher{attempts: %d, delay: %s, ttl: %s}", f.attempts, f.delay, f.ttl)
}
