// Package readability provides a go-readability implementation of
// locket.Extractor, the primary boilerplate-removal algorithm for the
// content enrichment stage.
package readability

import (
	"strings"

	"github.com/fwojciec/locket"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements locket.Extractor at compile time.
var _ locket.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main article content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article content with
// navigation, ads and chrome removed. An empty ContentHTML means the page
// had no extractable article body; that is not an error.
func (e *Extractor) Extract(rawHTML string) (*locket.ExtractResult, error) {
	if rawHTML == "" {
		return nil, locket.Errorf(locket.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &locket.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
