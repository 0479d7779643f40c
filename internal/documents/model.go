package documents

import "time"

// Document represents one uploaded file owned by a user. OCRText stays nil
// until an OCR run targets the document; afterwards it holds the latest
// extraction result.
type Document struct {
	ID         int64
	OwnerID    int64
	FileName   string
	OCRText    *string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
