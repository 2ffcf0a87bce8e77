// Package filter implements whole-grid transforms applied to one layer or
// to every layer of a canvas.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/asciiart/internal/art"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x", "h", "horizontal":
		return AxisX, nil
	case "y", "v", "vertical":
		return AxisY, nil
	}
	return AxisX, fmt.Errorf("unknown axis: %s", s)
}

type Filter interface {
	Name() string
	ApplyLayer(l *art.Layer) error
}

// CanvasFilter is implemented by filters that need more than a per-layer
// pass when applied to a whole canvas.
type CanvasFilter interface {
	ApplyCanvas(c *art.Canvas) error
}

// Apply runs f over the whole canvas.
func Apply(f Filter, c *art.Canvas) error {
	if cf, ok := f.(CanvasFilter); ok {
		return cf.ApplyCanvas(c)
	}
	for i, l := range c.Layers() {
		if err := f.ApplyLayer(l); err != nil {
			return fmt.Errorf("%s on layer %d: %w", f.Name(), i, err)
		}
	}
	return nil
}

// area resolves an optional affected rectangle against the layer grid.
func area(l *art.Layer, r *art.Rect) art.Rect {
	full := art.NewRect(0, 0, l.Width(), l.Height())
	if r == nil {
		return full
	}
	return r.Intersect(full)
}

func newGrid(w, h int) [][]rune {
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			grid[y][x] = art.Transparent
		}
	}
	return grid
}

// axisParam reads the optional axis param, which must be 0 or 1.
func axisParam(p map[string]float64) (Axis, error) {
	v, ok := p["axis"]
	if !ok {
		return AxisX, nil
	}
	switch v {
	case 0:
		return AxisX, nil
	case 1:
		return AxisY, nil
	}
	return AxisX, fmt.Errorf("axis must be 0 (x) or 1 (y), got %v", v)
}

func param(p map[string]float64, key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

var factories = map[string]func(map[string]float64) (Filter, error){
	"mirror": func(p map[string]float64) (Filter, error) {
		axis, err := axisParam(p)
		if err != nil {
			return nil, err
		}
		return &Mirror{Axis: axis}, nil
	},
	"outline": func(p map[string]float64) (Filter, error) {
		ch := rune(param(p, "char", '#'))
		if !art.ValidGlyph(ch) {
			return nil, fmt.Errorf("outline: %w", &art.GlyphError{Rune: ch})
		}
		return &Outline{Char: ch}, nil
	},
	"wave": func(p map[string]float64) (Filter, error) {
		axis, err := axisParam(p)
		if err != nil {
			return nil, err
		}
		w := &Wave{
			Axis:     axis,
			Speed:    param(p, "speed", 0.5),
			Phase:    p["phase"],
			Strength: int(param(p, "strength", 1)),
		}
		if w.Strength < 0 {
			return nil, fmt.Errorf("%w: wave strength %d", art.ErrInvalidSize, w.Strength)
		}
		return w, nil
	},
}

// New builds a filter by name. Recognized params: axis (0=x, 1=y), char
// (rune code, default '#'), speed (default 0.5), phase and strength
// (default 1). A param that is present is used as given, zero included.
func New(name string, params map[string]float64) (Filter, error) {
	fn, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown filter: %s", name)
	}
	return fn(params)
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
