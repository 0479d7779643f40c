package documents

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mtb0903/manage-docs/internal/ocr"
	"github.com/mtb0903/manage-docs/internal/shared/storage/object"
	"github.com/mtb0903/manage-docs/internal/shared/telemetry"
)

// Service contains business logic for documents.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Engine ocr.Engine
}

// Upload validates the file, persists the binary, then records metadata.
// The binary is written first; if the metadata insert fails the orphaned
// object stays on disk.
func (s *Service) Upload(ctx context.Context, ownerID int64, fileName string, r io.Reader) (Document, error) {
	if r == nil {
		return Document{}, ErrNoFile
	}
	if strings.TrimSpace(fileName) == "" {
		return Document{}, ErrEmptyFileName
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return Document{}, ErrNotPDF
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, ownerID, fileName, r)
	if err != nil {
		return Document{}, fmt.Errorf("save upload: %w", err)
	}

	doc := Document{
		OwnerID:    ownerID,
		FileName:   fileName,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  size,
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.Repo.Create(ctx, doc)
	if err != nil {
		telemetry.Error("documents.metadata_failed", map[string]any{
			"owner_id":    ownerID,
			"storage_key": storageKey,
			"err":         err.Error(),
		})
		return Document{}, fmt.Errorf("record document: %w", err)
	}
	doc.ID = id

	return doc, nil
}

// RunOCR parses the submitted document id, runs the extraction engine and
// stores the result. The update only lands when ownerID owns the document.
func (s *Service) RunOCR(ctx context.Context, ownerID int64, rawDocID string) (string, error) {
	docID, err := ParseDocID(rawDocID)
	if err != nil {
		return "", err
	}

	doc, err := s.Repo.GetByIDForOwner(ctx, docID, ownerID)
	if err != nil {
		return "", err
	}

	text, err := s.Engine.Extract(ctx, doc.StorageKey)
	if err != nil {
		return "", fmt.Errorf("extract document %d: %w", docID, err)
	}

	if err := s.Repo.SetOCRResult(ctx, docID, ownerID, text); err != nil {
		return "", err
	}
	return text, nil
}

// ListByOwner returns every document the user owns.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Document, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Attributes returns the attribute map of an owned document.
func (s *Service) Attributes(ctx context.Context, ownerID, docID int64) (map[string]string, error) {
	if _, err := s.Repo.GetByIDForOwner(ctx, docID, ownerID); err != nil {
		return nil, err
	}
	return s.Repo.GetAttributes(ctx, docID)
}

// SetAttribute upserts one attribute of an owned document.
func (s *Service) SetAttribute(ctx context.Context, ownerID, docID int64, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidInput
	}
	if _, err := s.Repo.GetByIDForOwner(ctx, docID, ownerID); err != nil {
		return err
	}
	return s.Repo.SetAttribute(ctx, docID, key, value)
}

// ParseDocID converts user input into a document id; only positive integers
// are accepted.
func ParseDocID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
