package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, _, err := store.Save(ctx, 1, "a.pdf", strings.NewReader("%PDF-1.4 hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("%PDF-1.4 hello")) {
		t.Fatalf("size = %d", size)
	}

	body, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 hello" {
		t.Fatalf("round trip mismatch: %q", data)
	}
}

func TestSameNameUploadsDoNotCollide(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key1, _, _, err := store.Save(ctx, 1, "a.pdf", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	key2, _, _, err := store.Save(ctx, 2, "a.pdf", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key1 == key2 {
		t.Fatalf("same-named uploads from different owners share key %q", key1)
	}

	body, err := store.Open(ctx, key1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "first" {
		t.Fatalf("first upload overwritten: %q", data)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Save(context.Background(), 1, "../../etc/passwd", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for traversal file name")
	}
}

func TestOpenRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../secret", "/etc/passwd"} {
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Errorf("Open(%q): expected error", key)
		}
	}
}
