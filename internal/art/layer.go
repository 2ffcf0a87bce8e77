package art

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Transparent marks a cell without content. It is never a valid rune, so
// it cannot collide with any glyph, including ' '.
const Transparent rune = -1

type EventKind int

const (
	// CellChanged is raised by Set when a cell value actually changes.
	CellChanged EventKind = iota
	// PropertyChanged is raised when a scalar property or the whole grid
	// is replaced (crop, merge, restore, filters).
	PropertyChanged
)

// LayerEvent describes one change to a layer.
type LayerEvent struct {
	Kind     EventKind
	Layer    *Layer
	X, Y     int
	Old, New rune
	Property string
}

var layerIDs atomic.Uint64

type Layer struct {
	id      uint64
	name    string
	visible bool
	offsetX int
	offsetY int
	data    [][]rune // [y][x]

	subs   map[int]func(LayerEvent)
	nextID int
}

// NewLayer creates a visible, fully transparent layer at offset (0,0).
func NewLayer(name string, width, height int) (*Layer, error) {
	return NewLayerAt(name, Rect{Width: width, Height: height})
}

// NewLayerAt creates a visible, fully transparent layer covering bounds,
// given in canvas space.
func NewLayerAt(name string, bounds Rect) (*Layer, error) {
	if bounds.Empty() {
		return nil, sizeError(bounds.Width, bounds.Height)
	}
	return &Layer{
		id:      layerIDs.Add(1),
		name:    name,
		visible: true,
		offsetX: bounds.X,
		offsetY: bounds.Y,
		data:    newGrid(bounds.Width, bounds.Height),
	}, nil
}

func newGrid(w, h int) [][]rune {
	cells := make([]rune, w*h)
	for i := range cells {
		cells[i] = Transparent
	}
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = cells[y*w : (y+1)*w : (y+1)*w]
	}
	return grid
}

func cloneGrid(src [][]rune) [][]rune {
	h := len(src)
	w := len(src[0])
	grid := newGrid(w, h)
	for y := range src {
		copy(grid[y], src[y])
	}
	return grid
}

// ID identifies the layer across clones and restores. Clone keeps it;
// every new layer gets a fresh one.
func (l *Layer) ID() uint64 { return l.id }

func (l *Layer) Name() string  { return l.name }
func (l *Layer) Visible() bool { return l.visible }
func (l *Layer) Width() int    { return len(l.data[0]) }
func (l *Layer) Height() int   { return len(l.data) }
func (l *Layer) Offset() Point { return Point{l.offsetX, l.offsetY} }

// Bounds returns the area covered by the layer in canvas space.
func (l *Layer) Bounds() Rect {
	return Rect{X: l.offsetX, Y: l.offsetY, Width: l.Width(), Height: l.Height()}
}

func (l *Layer) Rename(name string) {
	if l.name == name {
		return
	}
	l.name = name
	l.emitProperty("name")
}

func (l *Layer) SetVisible(v bool) {
	if l.visible == v {
		return
	}
	l.visible = v
	l.emitProperty("visible")
}

func (l *Layer) SetOffset(p Point) {
	if l.offsetX == p.X && l.offsetY == p.Y {
		return
	}
	l.offsetX, l.offsetY = p.X, p.Y
	l.emitProperty("offset")
}

// OnChange registers fn for every change of the layer and returns a
// function that removes the registration. Clones do not inherit
// subscribers.
func (l *Layer) OnChange(fn func(LayerEvent)) (cancel func()) {
	if l.subs == nil {
		l.subs = make(map[int]func(LayerEvent))
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() { delete(l.subs, id) }
}

func (l *Layer) emit(ev LayerEvent) {
	for _, fn := range l.subs {
		fn(ev)
	}
}

func (l *Layer) emitProperty(name string) {
	if len(l.subs) == 0 {
		return
	}
	l.emit(LayerEvent{Kind: PropertyChanged, Layer: l, Property: name})
}

func (l *Layer) inGrid(x, y int) bool {
	return x >= 0 && x < l.Width() && y >= 0 && y < l.Height()
}

// Get returns the cell at (x,y) in layer space, Transparent if empty.
func (l *Layer) Get(x, y int) (rune, error) {
	if !l.inGrid(x, y) {
		return Transparent, &RangeError{X: x, Y: y, Width: l.Width(), Height: l.Height()}
	}
	return l.data[y][x], nil
}

// Set stores r at (x,y) in layer space. Passing Transparent or EmptyGlyph
// clears the cell; other runes rejected by ValidGlyph return a
// *GlyphError. Subscribers are notified only when the value changes.
func (l *Layer) Set(x, y int, r rune) error {
	if !l.inGrid(x, y) {
		return &RangeError{X: x, Y: y, Width: l.Width(), Height: l.Height()}
	}
	r = ParseCell(r)
	if err := CheckGlyph(r); err != nil {
		return err
	}
	old := l.data[y][x]
	if old == r {
		return nil
	}
	l.data[y][x] = r
	if len(l.subs) > 0 {
		l.emit(LayerEvent{Kind: CellChanged, Layer: l, X: x, Y: y, Old: old, New: r})
	}
	return nil
}

// Fill sets every cell to r, accepting the same runes as Set.
func (l *Layer) Fill(r rune) error {
	r = ParseCell(r)
	if err := CheckGlyph(r); err != nil {
		return err
	}
	l.fill(r)
	return nil
}

func (l *Layer) Clear() { l.fill(Transparent) }

func (l *Layer) fill(r rune) {
	for y := range l.data {
		for x := range l.data[y] {
			l.data[y][x] = r
		}
	}
	l.emitProperty("data")
}

func (l *Layer) IsLayerPointVisible(p Point) bool {
	return l.inGrid(p.X, p.Y)
}

func (l *Layer) IsCanvasPointVisible(p Point) bool {
	return l.Bounds().Contains(p)
}

func (l *Layer) ToLayerPoint(canvas Point) Point {
	return Point{canvas.X - l.offsetX, canvas.Y - l.offsetY}
}

func (l *Layer) ToCanvasPoint(layer Point) Point {
	return Point{layer.X + l.offsetX, layer.Y + l.offsetY}
}

// at returns the cell at canvas point p, Transparent outside the layer.
func (l *Layer) at(p Point) rune {
	x, y := p.X-l.offsetX, p.Y-l.offsetY
	if !l.inGrid(x, y) {
		return Transparent
	}
	return l.data[y][x]
}

// Crop reallocates the layer to rect, given in canvas space. Cells inside
// both the old bounds and rect keep their canvas position; all other
// cells become transparent. The offset becomes rect's origin.
func (l *Layer) Crop(rect Rect) error {
	if rect.Empty() {
		return sizeError(rect.Width, rect.Height)
	}
	old := l.Bounds()
	grid := newGrid(rect.Width, rect.Height)
	keep := old.Intersect(rect)
	for y := keep.Y; y < keep.Y+keep.Height; y++ {
		copy(grid[y-rect.Y][keep.X-rect.X:keep.X-rect.X+keep.Width],
			l.data[y-old.Y][keep.X-old.X:keep.X-old.X+keep.Width])
	}
	l.data = grid
	l.offsetX, l.offsetY = rect.X, rect.Y
	Logger().Debug("layer cropped", "layer", l.name, "from", old.String(), "to", rect.String())
	l.emitProperty("data")
	return nil
}

// MergeDown treats other as the layer beneath l: l grows to the union of
// both bounds and every transparent cell of l takes other's cell at the
// same canvas position. Opaque cells of l are never overwritten.
func (l *Layer) MergeDown(other *Layer) error {
	union := l.Bounds().Union(other.Bounds())
	if err := l.Crop(union); err != nil {
		return err
	}
	for y := range l.data {
		for x := range l.data[y] {
			if l.data[y][x] != Transparent {
				continue
			}
			l.data[y][x] = other.at(Point{x + l.offsetX, y + l.offsetY})
		}
	}
	Logger().Debug("layer merged", "layer", l.name, "below", other.name)
	l.emitProperty("data")
	return nil
}

// Clone returns a deep copy of the grid, name, visibility and offset.
// The clone shares l's ID. Subscribers are not copied.
func (l *Layer) Clone() *Layer {
	return &Layer{
		id:      l.id,
		name:    l.name,
		visible: l.visible,
		offsetX: l.offsetX,
		offsetY: l.offsetY,
		data:    cloneGrid(l.data),
	}
}

// Restore copies the state of snapshot into l, keeping l's identity and
// subscribers. The snapshot is copied, not shared.
func (l *Layer) Restore(snapshot *Layer) {
	if snapshot == nil || snapshot == l {
		return
	}
	l.name = snapshot.name
	l.visible = snapshot.visible
	l.offsetX, l.offsetY = snapshot.offsetX, snapshot.offsetY
	l.data = cloneGrid(snapshot.data)
	l.emitProperty("restore")
}

// Cells returns a deep copy of the grid, indexed [y][x].
func (l *Layer) Cells() [][]rune {
	return cloneGrid(l.data)
}

// SetCells replaces the grid and the offset in one step. The layer takes
// ownership of grid, which must be non-empty and rectangular.
func (l *Layer) SetCells(grid [][]rune, offset Point) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return sizeError(0, len(grid))
	}
	w := len(grid[0])
	for y, row := range grid {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, y, len(row), w)
		}
	}
	l.data = grid
	l.offsetX, l.offsetY = offset.X, offset.Y
	l.emitProperty("data")
	return nil
}

// ToText serializes the grid row by row, one line per row, rendering
// transparent cells as EmptyGlyph.
func (l *Layer) ToText() string {
	var b strings.Builder
	for y, row := range l.data {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			b.WriteRune(FormatCell(r))
		}
	}
	return b.String()
}

func (l *Layer) String() string {
	return l.name + " " + l.Bounds().String()
}
