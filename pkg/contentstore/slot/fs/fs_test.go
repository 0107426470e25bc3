package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tendant/content-items/pkg/contentstore"
)

func TestFSBackend_BasicOps(t *testing.T) {
	tmp := t.TempDir()
	backend, err := New(Config{BaseDir: tmp})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}

	ctx := context.Background()
	key := "contentItems"

	// Missing key
	if _, err := backend.Load(ctx, key); !errors.Is(err, contentstore.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}

	// Save
	data := []byte(`[{"id":"1","type":"table","content":"a|b"}]`)
	if err := backend.Save(ctx, key, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, key+".json")); err != nil {
		t.Fatalf("expected slot file, stat err=%v", err)
	}

	// Load
	got, err := backend.Load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("load mismatch: %q", string(got))
	}

	// Overwrite leaves no temp files behind
	if err := backend.Save(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}

	// Delete
	if err := backend.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, key+".json")); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	if err := backend.Delete(ctx, key); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFSBackend_InvalidKey(t *testing.T) {
	backend, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new fs backend: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		err := backend.Save(ctx, key, []byte(`[]`))
		var slotErr *contentstore.SlotError
		if !errors.As(err, &slotErr) {
			t.Fatalf("key %q: expected SlotError, got %v", key, err)
		}
		if slotErr.Backend != "fs" || slotErr.Op != "save" {
			t.Fatalf("key %q: unexpected slot error %+v", key, slotErr)
		}
	}
}

func TestFSBackend_RequiresBaseDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error without base dir")
	}
}
