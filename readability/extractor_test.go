package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/locket"
	"github.com/fwojciec/locket/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content and discards chrome", func(t *testing.T) {
		t.Parallel()

		para := strings.Repeat("This is a long article paragraph with enough substance to be kept. ", 10)
		html := `<!DOCTYPE html>
<html>
<head><title>Article Title</title></head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<article>
	<h1>Article Title</h1>
	<p>` + para + `</p>
	<p>` + para + `</p>
</article>
<footer>Copyright 2024</footer>
</body>
</html>`

		result, err := readability.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "long article paragraph")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, locket.EINVALID, locket.ErrorCode(err))
	})
}
