// Package fs provides file-based storage for captured screenshots.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/locket"
)

// Ensure ScreenshotStore implements locket.ScreenshotStore at compile time.
var _ locket.ScreenshotStore = (*ScreenshotStore)(nil)

// ScreenshotStore writes screenshot images under a base directory. Files are
// keyed by document ID plus a timestamp so retries never collide with an
// earlier capture.
type ScreenshotStore struct {
	baseDir string
	now     func() time.Time
}

// StoreOption configures a ScreenshotStore.
type StoreOption func(*ScreenshotStore)

// WithClock overrides the clock used for filename timestamps. For tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *ScreenshotStore) {
		s.now = now
	}
}

// NewScreenshotStore creates a store rooted at baseDir.
func NewScreenshotStore(baseDir string, opts ...StoreOption) *ScreenshotStore {
	s := &ScreenshotStore{
		baseDir: baseDir,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SavePNG writes PNG data to screenshots/<docID>_<unixts>.png under the base
// directory and returns that relative path as the storage reference.
func (s *ScreenshotStore) SavePNG(docID string, data []byte) (string, error) {
	ref := filepath.Join("screenshots", fmt.Sprintf("%s_%d.png", docID, s.now().Unix()))
	fullPath := filepath.Join(s.baseDir, ref)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}

	return ref, nil
}
