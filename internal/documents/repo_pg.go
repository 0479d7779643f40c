package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. All statements bind parameters;
// nothing user-controlled is ever interpolated into query text.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document with ocr NULL.
func (r *PGRepo) Create(ctx context.Context, doc Document) (int64, error) {
	const query = `
INSERT INTO documents (owner_id, file_name, storage_key, mime_type, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	var storageKey sql.NullString
	if doc.StorageKey != "" {
		storageKey = sql.NullString{String: doc.StorageKey, Valid: true}
	}
	var mimeType sql.NullString
	if doc.MimeType != "" {
		mimeType = sql.NullString{String: doc.MimeType, Valid: true}
	}

	var id int64
	err := r.DB.QueryRowContext(
		ctx,
		query,
		doc.OwnerID,
		doc.FileName,
		storageKey,
		mimeType,
		doc.SizeBytes,
		doc.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByIDForOwner fetches a document scoped to its owner. A document owned by
// another user yields the same ErrNotFound as a missing one.
func (r *PGRepo) GetByIDForOwner(ctx context.Context, docID, ownerID int64) (Document, error) {
	const query = `
SELECT id, owner_id, file_name, ocr, storage_key, mime_type, size_bytes, created_at
FROM documents
WHERE id = $1 AND owner_id = $2
LIMIT 1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, docID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// SetOCRResult stores the extraction result with the ownership check inside
// the UPDATE predicate.
func (r *PGRepo) SetOCRResult(ctx context.Context, docID, ownerID int64, text string) error {
	const query = `
UPDATE documents
SET ocr = $1
WHERE id = $2 AND owner_id = $3`

	res, err := r.DB.ExecContext(ctx, query, text, docID, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns all documents for a user, oldest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Document, error) {
	const query = `
SELECT id, owner_id, file_name, ocr, storage_key, mime_type, size_bytes, created_at
FROM documents
WHERE owner_id = $1
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// GetAttributes returns the document's attribute set as a map.
func (r *PGRepo) GetAttributes(ctx context.Context, docID int64) (map[string]string, error) {
	const query = `
SELECT attribute_key, attribute_value
FROM attributes
WHERE doc_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attrs := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		attrs[key] = value
	}
	return attrs, rows.Err()
}

// SetAttribute upserts one key of the document's attribute set. Keys are
// unique per document, not across the whole table.
func (r *PGRepo) SetAttribute(ctx context.Context, docID int64, key, value string) error {
	const query = `
INSERT INTO attributes (doc_id, attribute_key, attribute_value)
VALUES ($1, $2, $3)
ON CONFLICT (doc_id, attribute_key) DO UPDATE SET attribute_value = EXCLUDED.attribute_value`

	_, err := r.DB.ExecContext(ctx, query, docID, key, value)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var ocr sql.NullString
	var storageKey sql.NullString
	var mimeType sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.FileName,
		&ocr,
		&storageKey,
		&mimeType,
		&doc.SizeBytes,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if ocr.Valid {
		doc.OCRText = &ocr.String
	}
	if storageKey.Valid {
		doc.StorageKey = storageKey.String
	}
	if mimeType.Valid {
		doc.MimeType = mimeType.String
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
