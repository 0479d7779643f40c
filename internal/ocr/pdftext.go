package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/mtb0903/manage-docs/internal/shared/storage/object"
)

// PDFText reads the text layer of a stored PDF. It is not real OCR, but it
// satisfies the Engine contract for PDFs that embed their text.
type PDFText struct {
	Store object.ObjectStore
}

// Extract opens the stored binary and returns its plain text.
func (e *PDFText) Extract(ctx context.Context, storageKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := e.Store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("open object key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read object key=%s: %w", storageKey, err)
	}

	reader := bytes.NewReader(raw)
	pdfReader, err := pdf.NewReader(reader, int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("parse pdf key=%s: %w", storageKey, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text key=%s: %w", storageKey, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var _ Engine = (*PDFText)(nil)
