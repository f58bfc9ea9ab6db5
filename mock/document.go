package mock

import (
	"context"

	"github.com/fwojciec/locket"
)

var _ locket.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of locket.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *locket.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*locket.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter locket.DocumentFilter) ([]*locket.Document, error)
	UpdateDocumentFn   func(ctx context.Context, id string, upd locket.DocumentUpdate) (*locket.Document, error)
	SetTagsFn          func(ctx context.Context, id string, tags []string) error
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *locket.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*locket.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter locket.DocumentFilter) ([]*locket.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd locket.DocumentUpdate) (*locket.Document, error) {
	return s.UpdateDocumentFn(ctx, id, upd)
}

func (s *DocumentService) SetTags(ctx context.Context, id string, tags []string) error {
	return s.SetTagsFn(ctx, id, tags)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
