// Package ocr extracts text from stored documents. The default engine is a
// canned stub; the contract is stable so a real extraction pipeline can be
// swapped in without touching callers.
package ocr

import "context"

// Engine produces extracted text for a stored document binary.
type Engine interface {
	Extract(ctx context.Context, storageKey string) (string, error)
}
