// Package httputil provides the HTTP fetch layer for remote problem files.
//
// # Overview
//
// This package provides the infrastructure [io.Load] uses when a problem
// path is an http(s) URL:
//
//   - [Fetcher]: GET with retry and optional response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Fetching
//
// [Fetcher] wraps an HTTP client with retry and an optional [cache.Cache]:
//
//	f := httputil.NewFetcher(fileCache)
//	data, err := f.Get(ctx, "https://example.com/plant.json")
//
// Responses are cached under keys built by the fetcher's [cache.Keyer],
// so repeated solves of the same remote problem do not re-download it.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures. Transport errors
// and 5xx responses are wrapped in [RetryableError] by the fetcher; any
// other error aborts immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return doRequest()
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Max attempts: 3
//   - Base backoff: 1 second (doubling each retry)
//   - Response TTL: [cache.TTLRemote]
//
// The response cache can be cleared via `pgraph cache clear` or by
// deleting the cache directory.
//
// [io.Load]: github.com/pgraphlab/pgraph/pkg/io#Load
// [cache.Cache]: github.com/pgraphlab/pgraph/pkg/cache#Cache
// [cache.Keyer]: github.com/pgraphlab/pgraph/pkg/cache#Keyer
// [cache.TTLRemote]: github.com/pgraphlab/pgraph/pkg/cache#TTLRemote
package httputil
