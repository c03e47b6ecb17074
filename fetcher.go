package docdex

import "context"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch performs an HTTP GET and returns the response body.
	// HTTP status failures are surfaced as coded errors (ENOTFOUND,
	// EUNAVAILABLE) distinct from transport errors. The context
	// controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// RateLimiter gates the start of fetch operations. A single shared limiter
// controls request-issue cadence independently of how many fetches are in
// flight concurrently.
type RateLimiter interface {
	// Wait blocks until the limiter allows the next request to start.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error
}
