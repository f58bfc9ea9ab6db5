package mock

import "github.com/fwojciec/locket"

var _ locket.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of locket.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string, pageURL string) (*locket.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string, pageURL string) (*locket.Metadata, error) {
	return e.ExtractMetadataFn(html, pageURL)
}
