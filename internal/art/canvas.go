package art

import (
	"fmt"
	"strings"
	"weak"
)

type CanvasEventKind int

const (
	LayerInserted CanvasEventKind = iota
	LayerRemoved
	LayerMoved
	CanvasResized
	CanvasRestored
)

// CanvasEvent describes a structural change of a canvas.
type CanvasEvent struct {
	Kind  CanvasEventKind
	Index int
	Layer *Layer
}

// Canvas is a fixed-size composition target holding an ordered stack of
// layers. Index 0 is the bottom-most layer.
type Canvas struct {
	width  int
	height int
	layers []*Layer

	subs   map[int]func(CanvasEvent)
	nextID int

	// detached remembers layers taken off the stack so that a restore can
	// bring back the same object while someone still holds it.
	detached map[uint64]weak.Pointer[Layer]
}

func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, sizeError(width, height)
	}
	return &Canvas{
		width:  width,
		height: height,
		layers: make([]*Layer, 0, 4),
	}, nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) Bounds() Rect {
	return Rect{Width: c.width, Height: c.height}
}

func (c *Canvas) LayerCount() int { return len(c.layers) }

// Layers returns the layers bottom to top. The slice is a copy; the
// layers are not.
func (c *Canvas) Layers() []*Layer {
	out := make([]*Layer, len(c.layers))
	copy(out, c.layers)
	return out
}

func (c *Canvas) Layer(i int) (*Layer, error) {
	if i < 0 || i >= len(c.layers) {
		return nil, &IndexError{Index: i, Len: len(c.layers)}
	}
	return c.layers[i], nil
}

// IndexOf returns the position of l, or -1.
func (c *Canvas) IndexOf(l *Layer) int {
	for i, layer := range c.layers {
		if layer == l {
			return i
		}
	}
	return -1
}

func (c *Canvas) OnChange(fn func(CanvasEvent)) (cancel func()) {
	if c.subs == nil {
		c.subs = make(map[int]func(CanvasEvent))
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *Canvas) emit(kind CanvasEventKind, index int, l *Layer) {
	for _, fn := range c.subs {
		fn(CanvasEvent{Kind: kind, Index: index, Layer: l})
	}
}

// InsertLayer places l at index i, 0 <= i <= LayerCount.
func (c *Canvas) InsertLayer(i int, l *Layer) error {
	if l == nil {
		return fmt.Errorf("art: insert nil layer")
	}
	if i < 0 || i > len(c.layers) {
		return &IndexError{Index: i, Len: len(c.layers) + 1}
	}
	c.layers = append(c.layers, nil)
	copy(c.layers[i+1:], c.layers[i:])
	c.layers[i] = l
	delete(c.detached, l.id)
	c.emit(LayerInserted, i, l)
	return nil
}

// AddLayer puts l on top of the stack.
func (c *Canvas) AddLayer(l *Layer) error {
	return c.InsertLayer(len(c.layers), l)
}

func (c *Canvas) RemoveLayer(i int) (*Layer, error) {
	l, err := c.Layer(i)
	if err != nil {
		return nil, err
	}
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	c.detach(l)
	c.emit(LayerRemoved, i, l)
	return l, nil
}

func (c *Canvas) detach(l *Layer) {
	if c.detached == nil {
		c.detached = make(map[uint64]weak.Pointer[Layer])
	}
	c.detached[l.id] = weak.Make(l)
}

// MoveLayer moves the layer at from so that it ends up at index to.
func (c *Canvas) MoveLayer(from, to int) error {
	l, err := c.Layer(from)
	if err != nil {
		return err
	}
	if to < 0 || to >= len(c.layers) {
		return &IndexError{Index: to, Len: len(c.layers)}
	}
	if from == to {
		return nil
	}
	c.layers = append(c.layers[:from], c.layers[from+1:]...)
	c.layers = append(c.layers, nil)
	copy(c.layers[to+1:], c.layers[to:])
	c.layers[to] = l
	c.emit(LayerMoved, to, l)
	return nil
}

// DuplicateLayer inserts a clone of layer i directly above it.
func (c *Canvas) DuplicateLayer(i int) (*Layer, error) {
	l, err := c.Layer(i)
	if err != nil {
		return nil, err
	}
	dup := l.Clone()
	dup.id = layerIDs.Add(1)
	dup.name = l.name + " copy"
	if err := c.InsertLayer(i+1, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// MergeDown merges layer i into the layer beneath it. The merged layer
// keeps the upper layer's name and visibility and ends up at index i-1.
func (c *Canvas) MergeDown(i int) error {
	upper, err := c.Layer(i)
	if err != nil {
		return err
	}
	if i == 0 {
		return &IndexError{Index: i - 1, Len: len(c.layers)}
	}
	lower := c.layers[i-1]
	if err := upper.MergeDown(lower); err != nil {
		return err
	}
	if _, err := c.RemoveLayer(i - 1); err != nil {
		return err
	}
	return nil
}

// Compose merges the visible layers bottom to top. Opaque cells overwrite
// whatever lies beneath; points never written are absent from the map.
// Only points inside the canvas are considered.
func (c *Canvas) Compose() map[Point]rune {
	out := make(map[Point]rune)
	bounds := c.Bounds()
	for _, l := range c.layers {
		if !l.visible {
			continue
		}
		area := l.Bounds().Intersect(bounds)
		for y := area.Y; y < area.Y+area.Height; y++ {
			row := l.data[y-l.offsetY]
			for x := area.X; x < area.X+area.Width; x++ {
				if r := row[x-l.offsetX]; r != Transparent {
					out[Point{x, y}] = r
				}
			}
		}
	}
	return out
}

// ToText returns the composed image, each row newline-terminated, with
// EmptyGlyph for transparent positions.
func (c *Canvas) ToText() string {
	return c.Render(EmptyGlyph)
}

// Render returns the composed image with blank in transparent positions.
func (c *Canvas) Render(blank rune) string {
	composed := c.Compose()
	var b strings.Builder
	b.Grow((c.width + 1) * c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if r, ok := composed[Point{x, y}]; ok {
				b.WriteRune(r)
			} else {
				b.WriteRune(blank)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Crop shrinks or grows the canvas to rect. Every layer is cropped to rect
// and moved so that rect's origin becomes the new canvas origin.
func (c *Canvas) Crop(rect Rect) error {
	if rect.Empty() {
		return sizeError(rect.Width, rect.Height)
	}
	for _, l := range c.layers {
		if err := l.Crop(rect); err != nil {
			return err
		}
		l.SetOffset(Point{l.offsetX - rect.X, l.offsetY - rect.Y})
	}
	c.width, c.height = rect.Width, rect.Height
	Logger().Debug("canvas cropped", "rect", rect.String(), "layers", len(c.layers))
	c.emit(CanvasResized, -1, nil)
	return nil
}

// Resize changes the canvas size without touching the layers.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return sizeError(width, height)
	}
	c.width, c.height = width, height
	c.emit(CanvasResized, -1, nil)
	return nil
}

// Clone deep-copies the canvas and all of its layers.
func (c *Canvas) Clone() *Canvas {
	layers := make([]*Layer, len(c.layers))
	for i, l := range c.layers {
		layers[i] = l.Clone()
	}
	return &Canvas{width: c.width, height: c.height, layers: layers}
}

// Restore copies snapshot into c in place. Layers are matched by ID, not
// by index: a layer present in both is restored in place and moved to its
// snapshot position, a removed layer that is still referenced somewhere is
// put back as the same object, and only layers nobody holds are cloned.
// Live layers missing from the snapshot are taken off the stack.
func (c *Canvas) Restore(snapshot *Canvas) {
	if snapshot == nil || snapshot == c {
		return
	}
	c.width, c.height = snapshot.width, snapshot.height

	live := make(map[uint64]*Layer, len(c.layers))
	for _, l := range c.layers {
		live[l.id] = l
	}
	layers := make([]*Layer, len(snapshot.layers))
	for i, s := range snapshot.layers {
		l, ok := live[s.id]
		if ok {
			delete(live, s.id)
		} else if wp, found := c.detached[s.id]; found {
			l = wp.Value()
			delete(c.detached, s.id)
		}
		if l == nil {
			layers[i] = s.Clone()
			continue
		}
		l.Restore(s)
		layers[i] = l
	}
	for _, l := range live {
		c.detach(l)
	}
	for id, wp := range c.detached {
		if wp.Value() == nil {
			delete(c.detached, id)
		}
	}
	c.layers = layers
	c.emit(CanvasRestored, -1, nil)
}
