//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/locket"
	"github.com/fwojciec/locket/fs"
	"github.com/fwojciec/locket/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Service implements locket.ScreenshotService.
var _ locket.ScreenshotService = (*rod.Service)(nil)

func TestService_Capture(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Capture Test</title></head>
<body><h1>Visible content</h1></body>
</html>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	store := fs.NewScreenshotStore(dir)

	svc, err := rod.NewService(store)
	require.NoError(t, err)
	defer svc.Close()

	ref, err := svc.Capture(context.Background(), srv.URL, "doc-abc")

	require.NoError(t, err)
	assert.Contains(t, ref, "doc-abc_")

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	// PNG magic bytes.
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestService_Capture_DismissesDialogs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body><script>alert("blocking dialog");</script><p>after dialog</p></body></html>`))
	}))
	defer srv.Close()

	store := fs.NewScreenshotStore(t.TempDir())

	svc, err := rod.NewService(store, rod.WithJobTimeout(30*time.Second))
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Capture(context.Background(), srv.URL, "doc-dialog")

	// A page alert must not hang or fail the capture.
	require.NoError(t, err)
}

func TestService_Capture_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {} // never respond
	}))
	defer srv.Close()

	store := fs.NewScreenshotStore(t.TempDir())

	svc, err := rod.NewService(store)
	require.NoError(t, err)
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Capture(ctx, srv.URL, "doc-cancel")
	assert.Error(t, err)
}
