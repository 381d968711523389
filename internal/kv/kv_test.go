package kv

import (
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "kv"))

	if _, ok := store.Get("absent"); ok {
		t.Error("Get() of absent key should report absence")
	}

	if err := store.Set("bookmarks", `{"map":{},"order":[]}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := store.Get("bookmarks")
	if !ok {
		t.Fatal("Get() after Set() reports absence")
	}
	if got != `{"map":{},"order":[]}` {
		t.Errorf("Get() = %q", got)
	}

	// Перезапись: последняя запись побеждает.
	if err := store.Set("bookmarks", "v2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := store.Get("bookmarks"); got != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", got)
	}
}
