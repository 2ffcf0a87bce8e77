package session

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/raster"
)

// Tool is one drawing gesture from one point to another, both in layer
// space.
type Tool interface {
	Name() string
	Stroke(d *raster.Drawer, from, to art.Point) error
}

type Pencil struct{ Char rune }

func (Pencil) Name() string { return "pencil" }
func (t Pencil) Stroke(d *raster.Drawer, from, to art.Point) error {
	d.DrawLine(t.Char, from.X, from.Y, to.X, to.Y)
	return nil
}

type Eraser struct{}

func (Eraser) Name() string { return "eraser" }
func (Eraser) Stroke(d *raster.Drawer, from, to art.Point) error {
	d.DrawLine(art.Transparent, from.X, from.Y, to.X, to.Y)
	return nil
}

type Line struct{ Char rune }

func (Line) Name() string { return "line" }
func (t Line) Stroke(d *raster.Drawer, from, to art.Point) error {
	d.DrawLine(t.Char, from.X, from.Y, to.X, to.Y)
	return nil
}

// Rectangle spans the two points as opposite corners.
type Rectangle struct {
	Char   rune
	Filled bool
}

func (Rectangle) Name() string { return "rectangle" }
func (t Rectangle) Stroke(d *raster.Drawer, from, to art.Point) error {
	r := art.RectFromPoints(from, to)
	d.DrawRectangle(t.Char, r.X, r.Y, r.Width, r.Height, t.Filled)
	return nil
}

// Circle is centered on from; to lies on the circle.
type Circle struct {
	Char   rune
	Filled bool
}

func (Circle) Name() string { return "circle" }
func (t Circle) Stroke(d *raster.Drawer, from, to art.Point) error {
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	radius := int(math.Round(math.Hypot(dx, dy)))
	if t.Filled {
		d.DrawFilledCircle(t.Char, from.X, from.Y, radius)
	} else {
		d.DrawCircle(t.Char, from.X, from.Y, radius)
	}
	return nil
}

// Ellipse is centered on from with radii taken from the distance to to.
type Ellipse struct{ Char rune }

func (Ellipse) Name() string { return "ellipse" }
func (t Ellipse) Stroke(d *raster.Drawer, from, to art.Point) error {
	rx, ry := to.X-from.X, to.Y-from.Y
	if rx < 0 {
		rx = -rx
	}
	if ry < 0 {
		ry = -ry
	}
	return d.DrawEllipse(t.Char, from.X, from.Y, rx, ry)
}

// Bucket flood-fills from the first point.
type Bucket struct{ Char rune }

func (Bucket) Name() string { return "bucket" }
func (t Bucket) Stroke(d *raster.Drawer, from, _ art.Point) error {
	d.FloodFill(t.Char, from.X, from.Y)
	return nil
}

var tools = map[string]func(ch rune, filled bool) Tool{
	"pencil":    func(ch rune, _ bool) Tool { return Pencil{Char: ch} },
	"eraser":    func(rune, bool) Tool { return Eraser{} },
	"line":      func(ch rune, _ bool) Tool { return Line{Char: ch} },
	"rectangle": func(ch rune, filled bool) Tool { return Rectangle{Char: ch, Filled: filled} },
	"circle":    func(ch rune, filled bool) Tool { return Circle{Char: ch, Filled: filled} },
	"ellipse":   func(ch rune, _ bool) Tool { return Ellipse{Char: ch} },
	"bucket":    func(ch rune, _ bool) Tool { return Bucket{Char: ch} },
}

// ToolByName resolves a tool by name. Aliases: rect, fill, erase. Every
// tool but the eraser needs a glyph art.CheckGlyph accepts.
func ToolByName(name string, ch rune, filled bool) (Tool, error) {
	switch name {
	case "rect":
		name = "rectangle"
	case "fill":
		name = "bucket"
	case "erase":
		name = "eraser"
	}
	fn, ok := tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if name != "eraser" {
		if err := art.CheckGlyph(ch); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return fn(ch, filled), nil
}

func ToolNames() []string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
