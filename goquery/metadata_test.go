package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/locket/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadata_Title(t *testing.T) {
	t.Parallel()

	t.Run("prefers og:title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
	<meta property="og:title" content="Hello World">
	<meta name="twitter:title" content="Twitter Title">
	<title>Page Title</title>
</head>
<body><h1>Heading</h1></body>
</html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Hello World", md.Title)
	})

	t.Run("falls back to twitter title then title tag then h1", func(t *testing.T) {
		t.Parallel()

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(
			`<html><head><meta name="twitter:title" content="Tw"></head></html>`,
			"https://example.com/")
		require.NoError(t, err)
		assert.Equal(t, "Tw", md.Title)

		md, err = goquery.NewMetadataExtractor().ExtractMetadata(
			`<html><head><title>Plain Title</title></head></html>`,
			"https://example.com/")
		require.NoError(t, err)
		assert.Equal(t, "Plain Title", md.Title)

		md, err = goquery.NewMetadataExtractor().ExtractMetadata(
			`<html><body><h1>  First Heading </h1><h1>Second</h1></body></html>`,
			"https://example.com/")
		require.NoError(t, err)
		assert.Equal(t, "First Heading", md.Title)
	})

	t.Run("missing title is not an error", func(t *testing.T) {
		t.Parallel()

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(
			`<html><body><p>no metadata here</p></body></html>`,
			"https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, md.Title)
	})
}

func TestExtractMetadata_Author(t *testing.T) {
	t.Parallel()

	t.Run("meta author wins over byline class", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="author" content="Jane Doe"></head>
<body><span class="byline">Someone Else</span></body></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", md.Author)
	})

	t.Run("byline class element as last resort", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="byline">By Sam Writer</div></body></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "By Sam Writer", md.Author)
	})
}

func TestExtractMetadata_PublishedAt(t *testing.T) {
	t.Parallel()

	t.Run("parses article:published_time", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="article:published_time" content="2024-01-12T10:30:00Z"></head></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		require.NotNil(t, md.PublishedAt)
		assert.Equal(t, time.Date(2024, 1, 12, 10, 30, 0, 0, time.UTC), *md.PublishedAt)
	})

	t.Run("unparsable value falls through to next rule", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="article:published_time" content="not a date">
<meta name="date" content="2023-06-01">
</head></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		require.NotNil(t, md.PublishedAt)
		assert.Equal(t, 2023, md.PublishedAt.Year())
	})

	t.Run("time element datetime attribute", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><time datetime="2022-11-05T08:00:00Z">Nov 5</time></body></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		require.NotNil(t, md.PublishedAt)
		assert.Equal(t, 2022, md.PublishedAt.Year())
	})

	t.Run("all values unparsable leaves date unset", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="date" content="whenever"></head></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		assert.Nil(t, md.PublishedAt)
	})
}

func TestExtractMetadata_Image(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		pageURL string
		want    string
	}{
		{
			name:    "absolute URL passes through",
			content: "https://cdn.example.com/img.png",
			pageURL: "https://example.com/post",
			want:    "https://cdn.example.com/img.png",
		},
		{
			name:    "scheme-relative gains page scheme",
			content: "//cdn.example.com/img.png",
			pageURL: "https://example.com/post",
			want:    "https://cdn.example.com/img.png",
		},
		{
			name:    "root-relative gains scheme and host",
			content: "/images/img.png",
			pageURL: "https://example.com/post",
			want:    "https://example.com/images/img.png",
		},
		{
			name:    "relative path appended to scheme and host",
			content: "images/img.png",
			pageURL: "https://example.com/blog/post",
			want:    "https://example.com/images/img.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html := `<html><head><meta property="og:image" content="` + tt.content + `"></head></html>`

			md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, tt.pageURL)

			require.NoError(t, err)
			assert.Equal(t, tt.want, md.Image)
		})
	}

	t.Run("twitter:image as fallback", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="twitter:image" content="https://example.com/tw.png"></head></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/tw.png", md.Image)
	})
}

func TestExtractMetadata_Source(t *testing.T) {
	t.Parallel()

	t.Run("og:site_name", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:site_name" content="Example News"></head></html>`

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://news.example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Example News", md.Source)
	})

	t.Run("falls back to hostname", func(t *testing.T) {
		t.Parallel()

		md, err := goquery.NewMetadataExtractor().ExtractMetadata(
			`<html></html>`, "https://news.example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "news.example.com", md.Source)
	})
}

func TestExtractMetadata_MalformedHTML(t *testing.T) {
	t.Parallel()

	// Unclosed tags and stray brackets must not fail extraction.
	html := `<html><head><meta property="og:title" content="Still Works"><body><div><p>broken`

	md, err := goquery.NewMetadataExtractor().ExtractMetadata(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, "Still Works", md.Title)
}
