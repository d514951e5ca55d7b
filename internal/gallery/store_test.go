package gallery

import (
	"errors"
	"testing"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestStore_SaveAndEnumerate(t *testing.T) {
	store := newStore(t)

	if err := store.Save("Alice", []byte("img-a")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save("Bob", []byte("img-b")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	images, err := store.Enumerate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}

	byName := map[string]string{}
	for _, img := range images {
		byName[img.Identity] = string(img.Data)
	}

	if byName["Alice"] != "img-a" {
		t.Errorf("expected Alice image 'img-a', got '%s'", byName["Alice"])
	}
}

func TestStore_LatestEnrollmentWins(t *testing.T) {
	store := newStore(t)

	if err := store.Save("Alice", []byte("old")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save("alice", []byte("new")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	images, err := store.Enumerate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(images) != 1 {
		t.Fatalf("expected 1 image after re-enrollment, got %d", len(images))
	}

	if string(images[0].Data) != "new" {
		t.Errorf("expected latest image to win, got '%s'", images[0].Data)
	}
}

func TestStore_FoldedLookup(t *testing.T) {
	store := newStore(t)

	if err := store.Save("Jiří Novák", []byte("img")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !store.Has("jiri novak") {
		t.Error("expected folded lookup to find 'Jiří Novák'")
	}

	if err := store.Delete("JIRI NOVAK"); err != nil {
		t.Errorf("expected folded delete to succeed, got %v", err)
	}

	if store.Has("Jiří Novák") {
		t.Error("expected image to be gone after delete")
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	store := newStore(t)

	err := store.Delete("nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SaveEmptyIdentity(t *testing.T) {
	store := newStore(t)

	if err := store.Save("   ", []byte("img")); err == nil {
		t.Error("expected error for blank identity")
	}
}

func TestFoldIdentityName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jiří", "jiri"},
		{"Alice Smith", "alice_smith"},
		{"  Bob  ", "bob"},
		{"a/b", "a_b"},
	}

	for _, tc := range cases {
		got := foldIdentityName(tc.in)
		if got != tc.want {
			t.Errorf("foldIdentityName(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
