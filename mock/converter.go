package mock

import "github.com/fwojciec/locket"

var _ locket.Converter = (*Converter)(nil)

// Converter is a mock implementation of locket.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
