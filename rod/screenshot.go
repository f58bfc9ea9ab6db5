// Package rod provides a Chrome-based implementation of
// locket.ScreenshotService using browser automation.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/locket"
	"github.com/go-rod/rod/lib/proto"
)

// Render bounds. The idle timeout covers waiting for network quiescence;
// the job timeout bounds the whole capture including navigation.
const (
	DefaultIdleTimeout = 60 * time.Second
	DefaultJobTimeout  = 120 * time.Second
)

// Viewport dimensions for captures.
const (
	ViewportWidth  = 1200
	ViewportHeight = 800
)

// userAgent matches the HTTP fetcher's identification string so sites see
// one consistent client.
const userAgent = "Mozilla/5.0 (compatible; Locket/1.0; +https://locket.example.com)"

// Ensure Service implements locket.ScreenshotService at compile time.
var _ locket.ScreenshotService = (*Service)(nil)

// Service renders URLs in headless Chrome and persists PNG captures.
// Service is safe for concurrent use by multiple goroutines.
type Service struct {
	manager     *BrowserManager
	store       locket.ScreenshotStore
	idleTimeout time.Duration
	jobTimeout  time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithIdleTimeout sets how long to wait for network idle before capturing.
func WithIdleTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.idleTimeout = d
	}
}

// WithJobTimeout sets the overall deadline for a single capture.
func WithJobTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.jobTimeout = d
	}
}

// NewService creates a Service backed by a managed headless Chrome browser.
// Close must be called when the Service is no longer needed.
func NewService(store locket.ScreenshotStore, opts ...ServiceOption) (*Service, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	s := &Service{
		manager:     manager,
		store:       store,
		idleTimeout: DefaultIdleTimeout,
		jobTimeout:  DefaultJobTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Capture renders the URL at a fixed viewport, waits for network idle,
// saves a PNG keyed by the document ID, and returns the storage reference.
// Page dialogs are dismissed automatically so captures never hang on
// confirm/alert prompts.
func (s *Service) Capture(ctx context.Context, url string, docID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	browser := s.manager.Browser()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
		return "", err
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             ViewportWidth,
		Height:            ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return "", err
	}

	// Dismiss any dialog the page opens during rendering. The subscription
	// ends when the page context is done.
	go page.EachEvent(func(e *proto.PageJavascriptDialogOpening) {
		_ = proto.PageHandleJavaScriptDialog{Accept: false}.Call(page)
	})()

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	waitIdle := page.Timeout(s.idleTimeout).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	waitIdle()

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return "", err
	}

	ref, err := s.store.SavePNG(docID, data)
	if err != nil {
		return "", err
	}

	s.manager.IncrementPageCount()
	return ref, nil
}

// Close releases browser resources.
func (s *Service) Close() error {
	return s.manager.Close()
}
