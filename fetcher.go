package locket

import "context"

// Fetcher retrieves raw HTML from URLs. It is the sole network-read
// primitive shared by the metadata and content stages.
type Fetcher interface {
	// Fetch performs a GET on the URL and returns the response body.
	// Non-success statuses, timeouts and transport failures return an
	// error with code EUNAVAILABLE. Fetch never retries internally;
	// retry policy belongs to the calling stage.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	Close() error
}
