package mock

import (
	"context"

	"github.com/fwojciec/locket"
)

var _ locket.ScreenshotService = (*ScreenshotService)(nil)

// ScreenshotService is a mock implementation of locket.ScreenshotService.
type ScreenshotService struct {
	CaptureFn func(ctx context.Context, url string, docID string) (string, error)
	CloseFn   func() error
}

func (s *ScreenshotService) Capture(ctx context.Context, url string, docID string) (string, error) {
	return s.CaptureFn(ctx, url, docID)
}

func (s *ScreenshotService) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

var _ locket.ScreenshotStore = (*ScreenshotStore)(nil)

// ScreenshotStore is a mock implementation of locket.ScreenshotStore.
type ScreenshotStore struct {
	SavePNGFn func(docID string, data []byte) (string, error)
}

func (s *ScreenshotStore) SavePNG(docID string, data []byte) (string, error) {
	return s.SavePNGFn(docID, data)
}
