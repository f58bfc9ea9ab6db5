package locket

import "time"

// Metadata holds page metadata extracted from HTML. Zero-valued fields mean
// "not found"; absence of any individual field is never an error.
type Metadata struct {
	Title       string
	Author      string
	PublishedAt *time.Time
	Image       string
	Source      string
}

// MetadataExtractor extracts structured metadata from HTML.
type MetadataExtractor interface {
	// ExtractMetadata parses the HTML (tolerating malformed markup) and
	// returns whatever metadata it can find. pageURL is used to resolve
	// relative image URLs and as the hostname fallback for Source.
	ExtractMetadata(html string, pageURL string) (*Metadata, error)
}
