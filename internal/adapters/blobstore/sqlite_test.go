package blobstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStore_GetBeforeAnyWrite(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	blob, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if blob != nil {
		t.Errorf("expected nil before any write, got %q", blob)
	}
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := []byte(`{"all_index": {}, "all_items": {}}`)
	if err := store.Set(ctx, first); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(first) {
		t.Errorf("Get = %q, want %q", got, first)
	}

	// A second write replaces, never appends.
	second := []byte(`{"all_index": {"Hat": []}, "all_items": {}}`)
	if err := store.Set(ctx, second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(second) {
		t.Errorf("Get after overwrite = %q, want %q", got, second)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	blob := []byte(`{"all_index": {}, "all_items": {}}`)
	if err := store.Set(ctx, blob); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("Get after reopen = %q, want %q", got, blob)
	}
}
