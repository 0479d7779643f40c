package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured and in handler tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]Document
	attrs  map[int64]map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID: 1,
		docs:   make(map[int64]Document),
		attrs:  make(map[int64]map[string]string),
	}
}

// Create stores a new document and returns its id.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = r.nextID
	doc.OCRText = nil
	r.nextID++
	r.docs[doc.ID] = doc
	return doc.ID, nil
}

// GetByIDForOwner fetches a document scoped to its owner.
func (r *MemoryRepo) GetByIDForOwner(ctx context.Context, docID, ownerID int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[docID]
	if !ok || doc.OwnerID != ownerID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// SetOCRResult updates ocr only for a document the owner holds.
func (r *MemoryRepo) SetOCRResult(ctx context.Context, docID, ownerID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[docID]
	if !ok || doc.OwnerID != ownerID {
		return ErrNotFound
	}
	doc.OCRText = &text
	r.docs[docID] = doc
	return nil
}

// ListByOwner returns the owner's documents ordered by id.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for _, doc := range r.docs {
		if doc.OwnerID == ownerID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetAttributes returns a copy of the document's attribute map.
func (r *MemoryRepo) GetAttributes(ctx context.Context, docID int64) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	attrs := make(map[string]string, len(r.attrs[docID]))
	for k, v := range r.attrs[docID] {
		attrs[k] = v
	}
	return attrs, nil
}

// SetAttribute upserts one key of the document's attribute map.
func (r *MemoryRepo) SetAttribute(ctx context.Context, docID int64, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attrs[docID] == nil {
		r.attrs[docID] = make(map[string]string)
	}
	r.attrs[docID][key] = value
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
