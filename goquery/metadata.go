// Package goquery provides a goquery-based implementation of
// locket.MetadataExtractor. Each metadata field is described by an ordered
// table of selector rules; the first rule yielding a non-empty value wins.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/locket"
)

// Ensure MetadataExtractor implements locket.MetadataExtractor at compile time.
var _ locket.MetadataExtractor = (*MetadataExtractor)(nil)

// rule pairs a CSS selector with the attribute to read from the first
// matching element. An empty attr reads the element's text content.
type rule struct {
	selector string
	attr     string
}

var titleRules = []rule{
	{selector: `meta[property="og:title"]`, attr: "content"},
	{selector: `meta[name="twitter:title"]`, attr: "content"},
	{selector: `title`},
	{selector: `h1`},
}

var authorRules = []rule{
	{selector: `meta[name="author"]`, attr: "content"},
	{selector: `meta[property="article:author"]`, attr: "content"},
	{selector: `meta[name="twitter:creator"]`, attr: "content"},
	{selector: `.author, .byline, .writer`},
}

var publishedRules = []rule{
	{selector: `meta[property="article:published_time"]`, attr: "content"},
	{selector: `meta[name="publishdate"]`, attr: "content"},
	{selector: `meta[name="date"]`, attr: "content"},
	{selector: `time[datetime]`, attr: "datetime"},
	{selector: `time[pubdate]`, attr: "datetime"},
}

var imageRules = []rule{
	{selector: `meta[property="og:image"]`, attr: "content"},
	{selector: `meta[name="twitter:image"]`, attr: "content"},
}

var sourceRules = []rule{
	{selector: `meta[property="og:site_name"]`, attr: "content"},
}

// MetadataExtractor extracts page metadata from HTML using CSS selector
// rule tables.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata parses the HTML and returns whatever metadata it can find.
// Malformed markup is tolerated; a missing field is never an error. Source
// falls back to the page URL's hostname when the page declares no site name.
func (e *MetadataExtractor) ExtractMetadata(rawHTML string, pageURL string) (*locket.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, locket.Errorf(locket.EINVALID, "failed to parse HTML: %v", err)
	}

	md := &locket.Metadata{
		Title:  firstMatch(doc, titleRules),
		Author: firstMatch(doc, authorRules),
	}

	// Dates get parsed rule by rule so that an unparsable value in a
	// higher-priority rule falls through to the next one.
	for _, r := range publishedRules {
		value := evalRule(doc, r)
		if value == "" {
			continue
		}
		t, err := dateparse.ParseAny(value)
		if err != nil {
			continue
		}
		utc := t.UTC()
		md.PublishedAt = &utc
		break
	}

	if image := firstMatch(doc, imageRules); image != "" {
		md.Image = resolveImageURL(image, pageURL)
	}

	md.Source = firstMatch(doc, sourceRules)
	if md.Source == "" {
		if u, err := url.Parse(pageURL); err == nil {
			md.Source = u.Host
		}
	}

	return md, nil
}

// firstMatch evaluates rules in priority order and returns the first
// non-empty value.
func firstMatch(doc *goquery.Document, rules []rule) string {
	for _, r := range rules {
		if value := evalRule(doc, r); value != "" {
			return value
		}
	}
	return ""
}

// evalRule reads the configured attribute (or text) from the first element
// matching the rule's selector.
func evalRule(doc *goquery.Document, r rule) string {
	sel := doc.Find(r.selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if r.attr != "" {
		value, _ := sel.Attr(r.attr)
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(sel.Text())
}

// resolveImageURL resolves an image URL against the page's own URL.
// Absolute URLs pass through; scheme-relative URLs gain the page's scheme;
// root-relative paths gain scheme+host; other relative paths are appended
// to scheme+host.
func resolveImageURL(image string, pageURL string) string {
	if u, err := url.Parse(image); err == nil && u.Scheme != "" {
		return image
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return image
	}
	scheme := base.Scheme
	if scheme == "" {
		scheme = "https"
	}

	if strings.HasPrefix(image, "//") {
		return scheme + ":" + image
	}
	if strings.HasPrefix(image, "/") {
		return scheme + "://" + base.Host + image
	}
	return scheme + "://" + base.Host + "/" + strings.TrimLeft(image, "/")
}
