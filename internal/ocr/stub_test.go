package ocr

import (
	"context"
	"testing"
)

func TestStubReturnsFixedText(t *testing.T) {
	engine := Stub{}
	for _, key := range []string{"", "a/b.pdf", "whatever"} {
		text, err := engine.Extract(context.Background(), key)
		if err != nil {
			t.Fatalf("Extract(%q): %v", key, err)
		}
		if text != StubText {
			t.Fatalf("Extract(%q) = %q, want stub text", key, text)
		}
	}
}

func TestStubHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Stub{}).Extract(ctx, "x"); err == nil {
		t.Fatal("expected context error")
	}
}
