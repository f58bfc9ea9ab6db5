package locket_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/locket"
	"github.com/stretchr/testify/assert"
)

func TestDocumentValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		doc := &locket.Document{URL: "https://example.com/article"}
		assert.NoError(t, doc.Validate())
	})

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()

		doc := &locket.Document{}
		err := doc.Validate()
		assert.Equal(t, locket.EINVALID, locket.ErrorCode(err))
	})

	t.Run("URL too long", func(t *testing.T) {
		t.Parallel()

		doc := &locket.Document{URL: "https://example.com/" + strings.Repeat("a", locket.MaxURLLen)}
		err := doc.Validate()
		assert.Equal(t, locket.EINVALID, locket.ErrorCode(err))
	})

	t.Run("non-http scheme", func(t *testing.T) {
		t.Parallel()

		doc := &locket.Document{URL: "ftp://example.com/file"}
		err := doc.Validate()
		assert.Equal(t, locket.EINVALID, locket.ErrorCode(err))
	})
}

func TestDocumentUpdateIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, locket.DocumentUpdate{}.IsZero())

	title := "Hello"
	assert.False(t, locket.DocumentUpdate{Title: &title}.IsZero())
}
