// Package raster draws points, lines, rectangles and circles onto a single
// layer. Requests outside the layer or outside the clamp rectangle are
// ignored silently; only the low-level layer API reports range errors.
package raster

import (
	"fmt"

	"github.com/san-kum/asciiart/internal/art"
)

// Drawer is bound to one layer. All coordinates are in layer space.
type Drawer struct {
	layer *art.Layer

	// BrushThickness is the stamp radius plus one. Values below 1 act as 1.
	BrushThickness int

	// Clamp restricts drawing to a rectangle in layer space while
	// ClampEnabled is set.
	Clamp        art.Rect
	ClampEnabled bool

	// OnDraw is called for every cell that actually changed.
	OnDraw func(r rune, x, y int)
}

func New(layer *art.Layer) *Drawer {
	return &Drawer{layer: layer, BrushThickness: 1}
}

func (d *Drawer) Layer() *art.Layer { return d.layer }

func (d *Drawer) radius() int {
	if d.BrushThickness < 1 {
		return 0
	}
	return d.BrushThickness - 1
}

func (d *Drawer) CanDrawAt(x, y int) bool {
	if !d.layer.IsLayerPointVisible(art.Pt(x, y)) {
		return false
	}
	if d.ClampEnabled && !d.Clamp.Contains(art.Pt(x, y)) {
		return false
	}
	return true
}

// DrawCharacter sets one cell. Use art.Transparent to erase. Runes the
// layer refuses to store are not drawn.
func (d *Drawer) DrawCharacter(r rune, x, y int) {
	if !d.CanDrawAt(x, y) {
		return
	}
	r = art.ParseCell(r)
	if cur, _ := d.layer.Get(x, y); cur == r {
		return
	}
	if err := d.layer.Set(x, y, r); err != nil {
		return
	}
	if d.OnDraw != nil {
		d.OnDraw(r, x, y)
	}
}

// stamp substitutes a single-cell draw with a filled circle of the brush
// radius.
func (d *Drawer) stamp(r rune, x, y int) {
	d.DrawFilledCircle(r, x, y, d.radius())
}

// DrawPoint stamps the brush once at (x,y).
func (d *Drawer) DrawPoint(r rune, x, y int) {
	d.stamp(r, x, y)
}

// DrawLine draws from (x0,y0) to (x1,y1) using Bresenham's algorithm,
// stamping the brush at every visited point, both endpoints included.
func (d *Drawer) DrawLine(r rune, x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		d.stamp(r, x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRectangle draws the border of the w×h rectangle at (x,y). When
// filled, every interior cell is stamped too.
func (d *Drawer) DrawRectangle(r rune, x, y, w, h int, filled bool) {
	if w <= 0 || h <= 0 {
		return
	}
	x1, y1 := x+w-1, y+h-1
	d.DrawLine(r, x, y, x1, y)
	d.DrawLine(r, x, y1, x1, y1)
	d.DrawLine(r, x, y, x, y1)
	d.DrawLine(r, x1, y, x1, y1)
	if !filled {
		return
	}
	for py := y + 1; py < y1; py++ {
		for px := x + 1; px < x1; px++ {
			d.stamp(r, px, py)
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm, mirroring
// one octant into the other seven.
func (d *Drawer) DrawCircle(r rune, cx, cy, radius int) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		d.stamp(r, cx, cy)
		return
	}
	x, y := radius, 0
	p := 1 - radius
	for x >= y {
		d.stamp(r, cx+x, cy+y)
		d.stamp(r, cx-x, cy+y)
		d.stamp(r, cx+x, cy-y)
		d.stamp(r, cx-x, cy-y)
		d.stamp(r, cx+y, cy+x)
		d.stamp(r, cx-y, cy+x)
		d.stamp(r, cx+y, cy-x)
		d.stamp(r, cx-y, cy-x)
		y++
		if p < 0 {
			p += 2*y + 1
		} else {
			x--
			p += 2*(y-x) + 1
		}
	}
}

// DrawFilledCircle fills the points strictly inside radius. Radius 0 is a
// single cell and radius 1 a five-cell plus.
func (d *Drawer) DrawFilledCircle(r rune, cx, cy, radius int) {
	switch {
	case radius < 0:
		return
	case radius == 0:
		d.DrawCharacter(r, cx, cy)
		return
	case radius == 1:
		d.DrawCharacter(r, cx, cy)
		d.DrawCharacter(r, cx+1, cy)
		d.DrawCharacter(r, cx-1, cy)
		d.DrawCharacter(r, cx, cy+1)
		d.DrawCharacter(r, cx, cy-1)
		return
	}
	rr := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y < rr {
				d.DrawCharacter(r, cx+x, cy+y)
			}
		}
	}
}

// DrawEllipse has no rasterizer; it always returns art.ErrNotSupported and
// leaves the layer untouched.
func (d *Drawer) DrawEllipse(r rune, cx, cy, rx, ry int) error {
	return fmt.Errorf("draw ellipse %dx%d at (%d,%d): %w", rx, ry, cx, cy, art.ErrNotSupported)
}

// FloodFill replaces the 4-connected region around (x,y) that shares the
// start cell's value. Cells outside CanDrawAt stop the fill.
func (d *Drawer) FloodFill(r rune, x, y int) {
	r = art.ParseCell(r)
	if !d.CanDrawAt(x, y) || art.CheckGlyph(r) != nil {
		return
	}
	target, _ := d.layer.Get(x, y)
	if target == r {
		return
	}
	stack := []art.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !d.CanDrawAt(p.X, p.Y) {
			continue
		}
		if cur, _ := d.layer.Get(p.X, p.Y); cur != target {
			continue
		}
		d.DrawCharacter(r, p.X, p.Y)
		stack = append(stack,
			art.Point{X: p.X + 1, Y: p.Y},
			art.Point{X: p.X - 1, Y: p.Y},
			art.Point{X: p.X, Y: p.Y + 1},
			art.Point{X: p.X, Y: p.Y - 1},
		)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
