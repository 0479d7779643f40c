package ocr

import "context"

// StubText is the fixed result the stub engine returns for every document.
const StubText = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

// Stub is a placeholder engine that ignores its input.
type Stub struct{}

// Extract always returns StubText.
func (Stub) Extract(ctx context.Context, storageKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return StubText, nil
}

var _ Engine = Stub{}
