package locket

import "context"

// ScreenshotService renders a URL in a headless browser and stores the
// resulting raster image.
type ScreenshotService interface {
	// Capture renders the URL and saves a screenshot keyed by the document
	// ID, returning the storage reference for the saved image. The context
	// bounds the overall render time.
	Capture(ctx context.Context, url string, docID string) (ref string, err error)

	// Close releases browser resources.
	Close() error
}

// ScreenshotStore persists captured screenshot images.
type ScreenshotStore interface {
	// SavePNG writes PNG data keyed by document ID and returns the storage
	// reference. Successive saves for the same document never collide.
	SavePNG(docID string, data []byte) (ref string, err error)
}
