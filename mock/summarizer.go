package mock

import "github.com/fwojciec/locket"

var _ locket.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of locket.Summarizer.
type Summarizer struct {
	SummarizeFn func(content, title string) (string, error)
}

func (s *Summarizer) Summarize(content, title string) (string, error) {
	return s.SummarizeFn(content, title)
}
