package mock

import "github.com/fwojciec/locket"

var _ locket.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of locket.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*locket.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*locket.ExtractResult, error) {
	return e.ExtractFn(html)
}
