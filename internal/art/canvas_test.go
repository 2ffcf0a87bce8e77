package art

import (
	"errors"
	"testing"
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCanvas_InsertRemove(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	a := mustLayer(t, "a", c.Bounds())
	b := mustLayer(t, "b", c.Bounds())

	if err := c.InsertLayer(1, a); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("insert past end: %v", err)
	}
	c.InsertLayer(0, a)
	c.InsertLayer(0, b)
	if got, _ := c.Layer(0); got != b {
		t.Error("insert at 0 did not put b at the bottom")
	}
	if _, err := c.RemoveLayer(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("remove past end: %v", err)
	}
	removed, err := c.RemoveLayer(0)
	if err != nil || removed != b {
		t.Fatalf("remove: %v %v", removed, err)
	}
	if c.LayerCount() != 1 {
		t.Errorf("count = %d", c.LayerCount())
	}
}

func TestCanvas_MoveLayer(t *testing.T) {
	c := newTestCanvas(t, 2, 2)
	names := []string{"a", "b", "c"}
	for _, n := range names {
		c.AddLayer(mustLayer(t, n, c.Bounds()))
	}
	if err := c.MoveLayer(0, 2); err != nil {
		t.Fatal(err)
	}
	var got string
	for _, l := range c.Layers() {
		got += l.Name()
	}
	if got != "bca" {
		t.Errorf("order = %s, want bca", got)
	}
}

func TestCanvas_ComposeTopWins(t *testing.T) {
	c := newTestCanvas(t, 5, 5)
	a := mustLayer(t, "A", c.Bounds())
	a.Fill('a')
	b := mustLayer(t, "B", c.Bounds())
	b.Fill('b')
	b.Set(2, 2, Transparent)
	c.AddLayer(a)
	c.AddLayer(b)

	composed := c.Compose()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := 'b'
			if x == 2 && y == 2 {
				want = 'a'
			}
			if got := composed[Pt(x, y)]; got != want {
				t.Errorf("(%d,%d) = %q, want %q", x, y, got, want)
			}
		}
	}
}

func TestCanvas_ComposeSkipsHiddenAndClips(t *testing.T) {
	c := newTestCanvas(t, 3, 1)
	hidden := mustLayer(t, "h", c.Bounds())
	hidden.Fill('h')
	hidden.SetVisible(false)
	shifted := mustLayer(t, "s", NewRect(-1, 0, 3, 1))
	shifted.Fill('s')
	c.AddLayer(hidden)
	c.AddLayer(shifted)

	if got := c.ToText(); got != "ss\x00\n" {
		t.Errorf("ToText = %q", got)
	}
	if got := c.Render('.'); got != "ss.\n" {
		t.Errorf("Render = %q", got)
	}
	if _, ok := c.Compose()[Pt(-1, 0)]; ok {
		t.Error("compose read outside the canvas")
	}
}

func TestCanvas_Crop(t *testing.T) {
	c := newTestCanvas(t, 6, 4)
	l := mustLayer(t, "a", c.Bounds())
	l.Set(3, 2, 'x')
	c.AddLayer(l)

	if err := c.Crop(NewRect(2, 1, 0, 2)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if err := c.Crop(NewRect(2, 1, 3, 2)); err != nil {
		t.Fatal(err)
	}
	if c.Width() != 3 || c.Height() != 2 {
		t.Fatalf("canvas %dx%d", c.Width(), c.Height())
	}
	if l.Bounds() != NewRect(0, 0, 3, 2) {
		t.Errorf("layer bounds %v", l.Bounds())
	}
	if got := c.Compose()[Pt(1, 1)]; got != 'x' {
		t.Errorf("cell moved: got %q at (1,1)", got)
	}
}

func TestCanvas_MergeDown(t *testing.T) {
	c := newTestCanvas(t, 2, 1)
	bottom := mustLayer(t, "bottom", c.Bounds())
	bottom.Fill('b')
	top := mustLayer(t, "top", c.Bounds())
	top.Set(1, 0, 't')
	c.AddLayer(bottom)
	c.AddLayer(top)

	if err := c.MergeDown(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("merge bottom layer: %v", err)
	}
	if err := c.MergeDown(1); err != nil {
		t.Fatal(err)
	}
	if c.LayerCount() != 1 {
		t.Fatalf("count = %d", c.LayerCount())
	}
	merged, _ := c.Layer(0)
	if merged != top || merged.ToText() != "bt" {
		t.Errorf("merged %s %q", merged.Name(), merged.ToText())
	}
}

func TestCanvas_CloneRestore(t *testing.T) {
	c := newTestCanvas(t, 3, 3)
	l := mustLayer(t, "a", c.Bounds())
	c.AddLayer(l)
	l.Set(0, 0, 'x')
	snap := c.Clone()

	l.Set(0, 0, 'y')
	c.AddLayer(mustLayer(t, "b", c.Bounds()))
	c.Resize(9, 9)

	restored := 0
	c.OnChange(func(ev CanvasEvent) {
		if ev.Kind == CanvasRestored {
			restored++
		}
	})
	c.Restore(snap)

	if c.Width() != 3 || c.LayerCount() != 1 || restored != 1 {
		t.Fatalf("restore: %dx%d layers=%d events=%d", c.Width(), c.Height(), c.LayerCount(), restored)
	}
	if got, _ := c.Layer(0); got != l {
		t.Error("layer identity not preserved")
	}
	if got, _ := l.Get(0, 0); got != 'x' {
		t.Errorf("cell = %q", got)
	}
}

func TestCanvas_DuplicateLayer(t *testing.T) {
	c := newTestCanvas(t, 2, 2)
	l := mustLayer(t, "a", c.Bounds())
	c.AddLayer(l)
	dup, err := c.DuplicateLayer(0)
	if err != nil {
		t.Fatal(err)
	}
	if dup == l || dup.Name() != "a copy" || c.IndexOf(dup) != 1 {
		t.Errorf("duplicate %q at %d", dup.Name(), c.IndexOf(dup))
	}
	if dup.ID() == l.ID() {
		t.Error("duplicate shares the original's id")
	}
}

func TestCanvas_RestoreMatchesLayersByID(t *testing.T) {
	c := newTestCanvas(t, 3, 1)
	a := mustLayer(t, "a", c.Bounds())
	b := mustLayer(t, "b", c.Bounds())
	d := mustLayer(t, "d", c.Bounds())
	c.AddLayer(a)
	c.AddLayer(b)
	c.AddLayer(d)
	b.Fill('b')
	d.Fill('d')
	snap := c.Clone()

	c.RemoveLayer(1)
	c.MoveLayer(1, 0)
	c.Restore(snap)

	for i, want := range []*Layer{a, b, d} {
		if got, _ := c.Layer(i); got != want {
			t.Fatalf("index %d holds %v, want %v", i, got, want)
		}
	}
	if b.Name() != "b" || b.ToText() != "bbb" || d.Name() != "d" || d.ToText() != "ddd" {
		t.Errorf("restored layers: %q %q / %q %q", b.Name(), b.ToText(), d.Name(), d.ToText())
	}

	// restoring the older snapshot again takes b off the stack
	after := c.Clone()
	c.RemoveLayer(1)
	removed := c.Clone()
	c.Restore(after)
	c.Restore(removed)
	if c.LayerCount() != 2 || c.IndexOf(b) != -1 || c.IndexOf(d) != 1 {
		t.Errorf("redo of remove: count=%d b=%d d=%d", c.LayerCount(), c.IndexOf(b), c.IndexOf(d))
	}
}

func TestCanvas_RestoreClonesUnknownLayers(t *testing.T) {
	c := newTestCanvas(t, 2, 1)
	snap := c.Clone()
	snap.AddLayer(mustLayer(t, "ghost", c.Bounds()))

	c.Restore(snap)
	got, err := c.Layer(0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "ghost" || got == snap.layers[0] {
		t.Errorf("restored %q shared=%v", got.Name(), got == snap.layers[0])
	}
}
