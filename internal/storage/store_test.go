package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/asciiart/internal/art"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	st := New(filepath.Join(t.TempDir(), "lib", "library.db"))
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testCanvas(t *testing.T, ch rune) *art.Canvas {
	t.Helper()
	c, err := art.NewCanvas(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	l, _ := art.NewLayer("ink", 4, 2)
	l.Set(1, 1, ch)
	c.AddLayer(l)
	return c
}

func TestStoreSaveLoad(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	id, err := st.Save(ctx, "smile", testCanvas(t, 'o'))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty id")
	}

	for _, ref := range []string{id, "smile"} {
		c, e, err := st.Load(ctx, ref)
		if err != nil {
			t.Fatalf("load %s failed: %v", ref, err)
		}
		if e.ID != id || e.Name != "smile" {
			t.Errorf("entry = %+v", e)
		}
		if e.Width != 4 || e.Height != 2 || e.Layers != 1 {
			t.Errorf("entry size = %dx%d/%d", e.Width, e.Height, e.Layers)
		}
		if got, want := c.ToText(), "\x00\x00\x00\x00\n\x00o\x00\x00\n"; got != want {
			t.Errorf("ToText = %q, want %q", got, want)
		}
	}
}

func TestStoreSave_ReplacesByName(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	first, err := st.Save(ctx, "doc", testCanvas(t, 'a'))
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(ctx, "doc", testCanvas(t, 'b'))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("id changed on overwrite: %s -> %s", first, second)
	}

	entries, err := st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	c, _, err := st.Load(ctx, "doc")
	if err != nil {
		t.Fatal(err)
	}
	l, _ := c.Layer(0)
	if r, _ := l.Get(1, 1); r != 'b' {
		t.Errorf("cell = %q, want 'b'", r)
	}
}

func TestStoreList(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	entries, err := st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty library, got %d", len(entries))
	}

	st.Save(ctx, "one", testCanvas(t, '1'))
	st.Save(ctx, "two", testCanvas(t, '2'))

	entries, err = st.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name] = true
		if e.CreatedAt.IsZero() || e.UpdatedAt.Before(e.CreatedAt) {
			t.Errorf("bad timestamps for %s: %v %v", e.Name, e.CreatedAt, e.UpdatedAt)
		}
	}
	if !names["one"] || !names["two"] {
		t.Errorf("names = %v", names)
	}
}

func TestStoreDelete(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	st.Save(ctx, "gone", testCanvas(t, 'x'))
	if err := st.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, _, err := st.Load(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("load after delete: err = %v, want ErrNotFound", err)
	}
	if err := st.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestStoreSave_EmptyName(t *testing.T) {
	st := newStore(t)
	if _, err := st.Save(context.Background(), "", testCanvas(t, 'x')); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	ctx := context.Background()

	st := New(path)
	if _, err := st.Save(ctx, "kept", testCanvas(t, 'k')); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st = New(path)
	defer st.Close()
	if _, _, err := st.Load(ctx, "kept"); err != nil {
		t.Errorf("load after reopen: %v", err)
	}
}
