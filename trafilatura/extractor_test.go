package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/locket"
	"github.com/fwojciec/locket/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article body", func(t *testing.T) {
		t.Parallel()

		para := strings.Repeat("A substantial sentence about the article topic at hand. ", 12)
		html := `<!DOCTYPE html>
<html>
<head><title>Sample</title></head>
<body>
<main><article><p>` + para + `</p><p>` + para + `</p></article></main>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "substantial sentence")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, locket.EINVALID, locket.ErrorCode(err))
	})
}
