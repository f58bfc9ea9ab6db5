package locket

import (
	"context"
	"net/url"
	"time"
)

// MaxURLLen is the maximum accepted length of a document URL.
const MaxURLLen = 2048

// DefaultSource is the source name used when a page provides none.
const DefaultSource = "web"

// Document represents a saved URL and its enrichment state. Only URL (and
// optionally Title and Tags) are set at creation; the remaining fields are
// filled in by background enrichment stages. A document with any subset of
// enrichment fields populated is a normal terminal state, not an error.
type Document struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	PublishedAt *time.Time `json:"publishedAt"`
	Image       string     `json:"image"`
	Source      string     `json:"source"`
	Content     string     `json:"content"` // markdown
	ContentHash string     `json:"contentHash"`
	Summary     string     `json:"summary"`
	Screenshot  string     `json:"screenshot"` // storage reference
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if len(d.URL) > MaxURLLen {
		return Errorf(EINVALID, "document URL exceeds %d characters", MaxURLLen)
	}
	u, err := url.Parse(d.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "document URL must be a valid http(s) URL")
	}
	return nil
}

// DocumentUpdate represents a partial-field update. Only non-nil fields are
// written, so concurrent enrichment stages touching disjoint field sets never
// clobber each other. Content, Summary and Screenshot are written exclusively
// by the pipeline; no user path sets them.
type DocumentUpdate struct {
	Title       *string
	Author      *string
	PublishedAt *time.Time
	Image       *string
	Source      *string
	Content     *string
	ContentHash *string
	Summary     *string
	Screenshot  *string
}

// IsZero reports whether the update carries no fields.
func (u DocumentUpdate) IsZero() bool {
	return u.Title == nil && u.Author == nil && u.PublishedAt == nil &&
		u.Image == nil && u.Source == nil && u.Content == nil &&
		u.ContentHash == nil && u.Summary == nil && u.Screenshot == nil
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	// Returns ECONFLICT if a live document with the same URL exists.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist or is soft-deleted.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, newest first.
	// Soft-deleted documents are excluded.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// UpdateDocument applies a partial-field update and returns the updated
	// document. Returns ENOTFOUND if the document does not exist.
	UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (*Document, error)

	// SetTags replaces the document's tag set.
	SetTags(ctx context.Context, id string, tags []string) error

	// DeleteDocument soft-deletes a document. History is retained; the
	// document simply disappears from normal visibility.
	// Returns ENOTFOUND if the document does not exist or is already deleted.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`
	Tag *string `json:"tag"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
