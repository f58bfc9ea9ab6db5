package sqlite

import (
	"strings"
	"time"

	"github.com/fwojciec/locket"
)

// documentColumns is the column list shared by all document SELECTs, in
// scanDocument order.
const documentColumns = `id, url, title, author, published_at, image, source,
	content, content_hash, summary, screenshot, created_at, updated_at, deleted_at`

// scanner abstracts *sql.Row and *sql.Rows for scanDocument.
type scanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a document row in documentColumns order.
func scanDocument(row scanner) (*locket.Document, error) {
	var doc locket.Document
	var publishedAt, deletedAt, createdAt, updatedAt *string

	err := row.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Author, &publishedAt,
		&doc.Image, &doc.Source, &doc.Content, &doc.ContentHash, &doc.Summary,
		&doc.Screenshot, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	if doc.CreatedAt, err = parseRFC3339(*createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseRFC3339(*updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if publishedAt != nil {
		t, err := parseRFC3339(*publishedAt, "published_at")
		if err != nil {
			return nil, err
		}
		doc.PublishedAt = &t
	}
	if deletedAt != nil {
		t, err := parseRFC3339(*deletedAt, "deleted_at")
		if err != nil {
			return nil, err
		}
		doc.DeletedAt = &t
	}

	return &doc, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, locket.Errorf(locket.EINTERNAL, "failed to parse %s: %v", fieldName, err)
	}
	return t, nil
}

// formatNullableTime formats an optional time for storage; nil stays NULL.
func formatNullableTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
