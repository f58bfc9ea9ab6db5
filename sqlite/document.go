package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/locket"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ locket.DocumentService = (*DocumentService)(nil)

// DocumentService implements locket.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document. The URL must be unique among live
// documents; a duplicate returns ECONFLICT.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *locket.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents WHERE url = ? AND deleted_at IS NULL
	`, doc.URL).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return locket.Errorf(locket.ECONFLICT, "document with URL %q already exists", doc.URL)
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Source == "" {
		doc.Source = locket.DefaultSource
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, url, title, author, published_at, image, source,
			content, content_hash, summary, screenshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.URL, doc.Title, doc.Author, formatNullableTime(doc.PublishedAt),
		doc.Image, doc.Source, doc.Content, doc.ContentHash, doc.Summary, doc.Screenshot,
		doc.CreatedAt.Format(time.RFC3339), doc.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	if len(doc.Tags) > 0 {
		if err := s.insertTags(ctx, doc.ID, doc.Tags); err != nil {
			return err
		}
	}

	return nil
}

// FindDocumentByID retrieves a live document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*locket.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = ? AND deleted_at IS NULL
	`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, locket.Errorf(locket.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.Tags, err = s.findTags(ctx, doc.ID); err != nil {
		return nil, err
	}

	return doc, nil
}

// FindDocuments retrieves live documents matching the filter, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter locket.DocumentFilter) ([]*locket.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE deleted_at IS NULL")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Tag != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM document_tags WHERE document_id = documents.id AND tag = ?)")
		args = append(args, *filter.Tag)
	}

	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*locket.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.Tags, err = s.findTags(ctx, doc.ID); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

// UpdateDocument applies a partial-field update: only non-nil fields are
// written, so stages running concurrently on the same document never clobber
// each other's columns. Setting Content without an explicit ContentHash
// recomputes the hash.
func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd locket.DocumentUpdate) (*locket.Document, error) {
	if upd.IsZero() {
		return s.FindDocumentByID(ctx, id)
	}

	if upd.Content != nil && upd.ContentHash == nil {
		hash := hashContent(*upd.Content)
		upd.ContentHash = &hash
	}

	var set []string
	var args []any

	appendSet := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Author != nil {
		appendSet("author", *upd.Author)
	}
	if upd.PublishedAt != nil {
		appendSet("published_at", upd.PublishedAt.UTC().Format(time.RFC3339))
	}
	if upd.Image != nil {
		appendSet("image", *upd.Image)
	}
	if upd.Source != nil {
		appendSet("source", *upd.Source)
	}
	if upd.Content != nil {
		appendSet("content", *upd.Content)
	}
	if upd.ContentHash != nil {
		appendSet("content_hash", *upd.ContentHash)
	}
	if upd.Summary != nil {
		appendSet("summary", *upd.Summary)
	}
	if upd.Screenshot != nil {
		appendSet("screenshot", *upd.Screenshot)
	}
	appendSet("updated_at", time.Now().UTC().Format(time.RFC3339))

	args = append(args, id)
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET `+strings.Join(set, ", ")+`
		WHERE id = ? AND deleted_at IS NULL
	`, args...)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, locket.Errorf(locket.ENOTFOUND, "document not found")
	}

	return s.FindDocumentByID(ctx, id)
}

// SetTags replaces the document's tag set.
func (s *DocumentService) SetTags(ctx context.Context, id string, tags []string) error {
	if _, err := s.FindDocumentByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM document_tags WHERE document_id = ?", id); err != nil {
		return err
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO document_tags (document_id, tag) VALUES (?, ?)", id, tag); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteDocument soft-deletes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, now, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return locket.Errorf(locket.ENOTFOUND, "document not found")
	}

	return nil
}

func (s *DocumentService) insertTags(ctx context.Context, id string, tags []string) error {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO document_tags (document_id, tag) VALUES (?, ?)", id, tag); err != nil {
			return err
		}
	}
	return nil
}

func (s *DocumentService) findTags(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM document_tags WHERE document_id = ? ORDER BY tag", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
