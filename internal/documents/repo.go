package documents

import "context"

// Repo defines persistence operations for documents and their attributes.
type Repo interface {
	Create(ctx context.Context, doc Document) (int64, error)
	GetByIDForOwner(ctx context.Context, docID, ownerID int64) (Document, error)
	// SetOCRResult updates ocr only when the document exists and belongs to
	// ownerID; the ownership check is part of the write predicate, so a
	// non-owned target is a zero-row no-op reported as ErrNotFound.
	SetOCRResult(ctx context.Context, docID, ownerID int64, text string) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Document, error)
	GetAttributes(ctx context.Context, docID int64) (map[string]string, error)
	SetAttribute(ctx context.Context, docID int64, key, value string) error
}
