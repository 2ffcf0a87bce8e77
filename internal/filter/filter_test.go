package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/asciiart/internal/art"
)

func layerFrom(t *testing.T, rows ...string) *art.Layer {
	t.Helper()
	w := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > w {
			w = n
		}
	}
	l, err := art.NewLayer("test", w, len(rows))
	if err != nil {
		t.Fatal(err)
	}
	for y, r := range rows {
		l.SetRow(y, strings.ReplaceAll(r, ".", "\x00"))
	}
	return l
}

func rowsOf(l *art.Layer) string {
	return strings.ReplaceAll(l.ToText(), "\x00", ".")
}

func TestMirror_WholeLayer(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
		in   []string
		want string
	}{
		{"x", AxisX, []string{"ab.", "cde"}, ".ba\nedc"},
		{"y", AxisY, []string{"ab.", "cde"}, "cde\nab."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layerFrom(t, tt.in...)
			if err := (&Mirror{Axis: tt.axis}).ApplyLayer(l); err != nil {
				t.Fatal(err)
			}
			if got := rowsOf(l); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMirror_SubAreaIsInvolution(t *testing.T) {
	l := layerFrom(t, "abcdef", "ghijkl")
	r := art.NewRect(2, 0, 3, 2)
	m := &Mirror{Axis: AxisX, Area: &r}

	m.ApplyLayer(l)
	if got := rowsOf(l); got != "abedcf\nghkjil" {
		t.Errorf("after one pass %q", got)
	}
	m.ApplyLayer(l)
	if got := rowsOf(l); got != "abcdef\nghijkl" {
		t.Errorf("mirroring twice should restore, got %q", got)
	}
}

func TestMirror_CanvasNegatesOffset(t *testing.T) {
	c, _ := art.NewCanvas(4, 4)
	l, _ := art.NewLayerAt("a", art.NewRect(2, 1, 2, 1))
	l.SetRow(0, "ab")
	c.AddLayer(l)

	if err := Apply(&Mirror{Axis: AxisX}, c); err != nil {
		t.Fatal(err)
	}
	if l.Offset() != art.Pt(-2, 1) {
		t.Errorf("offset = %v", l.Offset())
	}
	if l.ToText() != "ba" {
		t.Errorf("text = %q", l.ToText())
	}
}

// Mirroring the whole canvas reflects offsets about the canvas origin,
// not about the canvas centre, so a layer right of the origin leaves the
// visible area. Mirroring again brings it back.
func TestMirror_CanvasMovesOffsetLayerOutOfView(t *testing.T) {
	c, _ := art.NewCanvas(4, 1)
	l, _ := art.NewLayerAt("a", art.NewRect(2, 0, 2, 1))
	l.SetRow(0, "ab")
	c.AddLayer(l)
	before := c.Render('.')

	if err := Apply(&Mirror{Axis: AxisX}, c); err != nil {
		t.Fatal(err)
	}
	if l.Offset() != art.Pt(-2, 0) {
		t.Errorf("offset = %v, want (-2,0)", l.Offset())
	}
	if got := c.Compose(); len(got) != 0 {
		t.Errorf("composed = %v, want nothing in view", got)
	}

	Apply(&Mirror{Axis: AxisX}, c)
	if got := c.Render('.'); got != before {
		t.Errorf("second mirror = %q, want %q", got, before)
	}
}

func TestOutline(t *testing.T) {
	l := layerFrom(t, ".....", "..x..", ".....")
	if err := (&Outline{Char: 'o'}).ApplyLayer(l); err != nil {
		t.Fatal(err)
	}
	want := "..o..\n.oxo.\n..o.."
	if got := rowsOf(l); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestOutline_InvalidChar(t *testing.T) {
	l := layerFrom(t, ".x.")
	if err := (&Outline{Char: '\n'}).ApplyLayer(l); !errors.Is(err, art.ErrInvalidGlyph) {
		t.Errorf("err = %v, want ErrInvalidGlyph", err)
	}
	if got := rowsOf(l); got != ".x." {
		t.Errorf("layer changed: %q", got)
	}
}

func TestOutline_DoesNotGrowWithinPass(t *testing.T) {
	l := layerFrom(t, "x...")
	(&Outline{Char: 'o'}).ApplyLayer(l)
	if got := rowsOf(l); got != "xo.." {
		t.Errorf("got %q", got)
	}
}

func TestOutline_Area(t *testing.T) {
	l := layerFrom(t, ".x.")
	r := art.NewRect(2, 0, 1, 1)
	(&Outline{Char: 'o', Area: &r}).ApplyLayer(l)
	if got := rowsOf(l); got != ".xo" {
		t.Errorf("got %q", got)
	}
}

func TestWave(t *testing.T) {
	l := layerFrom(t, "ab", "cd", "ef")
	l.SetOffset(art.Pt(5, 5))
	w := &Wave{Axis: AxisX, Speed: 1.5707963267948966, Strength: 1}
	if err := w.ApplyLayer(l); err != nil {
		t.Fatal(err)
	}
	if l.Width() != 4 || l.Height() != 3 {
		t.Fatalf("size %dx%d", l.Width(), l.Height())
	}
	if l.Offset() != art.Pt(4, 5) {
		t.Errorf("offset %v", l.Offset())
	}
	// sin(0)=0, sin(pi/2)=1, sin(pi)=0
	want := ".ab.\n..cd\n.ef."
	if got := rowsOf(l); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWave_AxisY(t *testing.T) {
	l := layerFrom(t, "ab")
	w := &Wave{Axis: AxisY, Speed: 1.5707963267948966, Strength: 1}
	w.ApplyLayer(l)
	if l.Height() != 3 || l.Offset() != art.Pt(0, -1) {
		t.Fatalf("bounds %v", l.Bounds())
	}
	if got := rowsOf(l); got != "..\na.\n.b" {
		t.Errorf("got %q", got)
	}
}

func TestWave_NegativeStrength(t *testing.T) {
	l := layerFrom(t, "a")
	if err := (&Wave{Strength: -1}).ApplyLayer(l); !errors.Is(err, art.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name, map[string]float64{"strength": 1})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if f.Name() != name {
			t.Errorf("New(%s).Name() = %s", name, f.Name())
		}
	}
	if _, err := New("blur", nil); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestNew_Params(t *testing.T) {
	f, err := New("wave", map[string]float64{"speed": 0, "strength": 2})
	if err != nil {
		t.Fatal(err)
	}
	if w := f.(*Wave); w.Speed != 0 || w.Strength != 2 {
		t.Errorf("explicit zero speed lost: %+v", w)
	}
	f, _ = New("wave", nil)
	if w := f.(*Wave); w.Speed != 0.5 || w.Strength != 1 || w.Axis != AxisX {
		t.Errorf("defaults: %+v", w)
	}
	f, _ = New("mirror", map[string]float64{"axis": 1})
	if m := f.(*Mirror); m.Axis != AxisY {
		t.Errorf("mirror axis = %v", m.Axis)
	}

	bad := []struct {
		name   string
		params map[string]float64
	}{
		{"mirror", map[string]float64{"axis": 2}},
		{"mirror", map[string]float64{"axis": -1}},
		{"wave", map[string]float64{"axis": 0.5}},
		{"wave", map[string]float64{"strength": -1}},
		{"outline", map[string]float64{"char": '\n'}},
		{"outline", map[string]float64{"char": 0}},
	}
	for _, tt := range bad {
		if _, err := New(tt.name, tt.params); err == nil {
			t.Errorf("New(%s, %v) should fail", tt.name, tt.params)
		}
	}
}

// A zero speed shifts every row by the same amount.
func TestWave_ZeroSpeed(t *testing.T) {
	l := layerFrom(t, "a", "b")
	w := &Wave{Axis: AxisX, Speed: 0, Phase: 1.5707963267948966, Strength: 1}
	if err := w.ApplyLayer(l); err != nil {
		t.Fatal(err)
	}
	if got := rowsOf(l); got != "..a
..b" {
		t.Errorf("got %q", got)
	}
}
