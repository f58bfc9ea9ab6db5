package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/locket"
	lochttp "github.com/fwojciec/locket/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer srv.Close()

		f := lochttp.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", html)
	})

	t.Run("sends identifying user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := lochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, lochttp.UserAgent, gotUA)
	})

	t.Run("non-2xx status is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := lochttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, locket.EUNAVAILABLE, locket.ErrorCode(err))
		assert.Contains(t, locket.ErrorMessage(err), "HTTP 500")
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		t.Parallel()

		f := lochttp.NewFetcher(lochttp.WithTimeout(500 * time.Millisecond))
		defer f.Close()

		// Port 0 is never listening.
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:0/")

		require.Error(t, err)
		assert.Equal(t, locket.EUNAVAILABLE, locket.ErrorCode(err))
	})

	t.Run("timeout is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		f := lochttp.NewFetcher(lochttp.WithTimeout(20 * time.Millisecond))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, locket.EUNAVAILABLE, locket.ErrorCode(err))
	})

	t.Run("2xx statuses other than 200 succeed", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		f := lochttp.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
	})
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("throttles requests to the same domain", func(t *testing.T) {
		t.Parallel()

		l := lochttp.NewDomainLimiter(50) // 20ms between requests

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "example.com"))
		require.NoError(t, l.Wait(context.Background(), "example.com"))
		elapsed := time.Since(start)

		assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
	})

	t.Run("different domains are independent", func(t *testing.T) {
		t.Parallel()

		l := lochttp.NewDomainLimiter(1) // 1s between same-domain requests

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "a.example.com"))
		require.NoError(t, l.Wait(context.Background(), "b.example.com"))
		elapsed := time.Since(start)

		assert.Less(t, elapsed, 500*time.Millisecond)
	})

	t.Run("returns error when context canceled", func(t *testing.T) {
		t.Parallel()

		l := lochttp.NewDomainLimiter(0.001)
		require.NoError(t, l.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx, "example.com")
		assert.Error(t, err)
	})
}
