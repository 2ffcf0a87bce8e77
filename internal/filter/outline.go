package filter

import "github.com/san-kum/asciiart/internal/art"

// Outline sets every transparent cell of Area that touches an opaque cell
// (up, down, left or right) to Char.
type Outline struct {
	Char rune
	Area *art.Rect
}

func (o *Outline) Name() string { return "outline" }

func (o *Outline) ApplyLayer(l *art.Layer) error {
	if !art.ValidGlyph(o.Char) {
		return &art.GlyphError{Rune: o.Char}
	}
	a := area(l, o.Area)
	if a.Empty() {
		return nil
	}
	old := l.Cells()
	grid := l.Cells()
	w, h := l.Width(), l.Height()
	opaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return old[y][x] != art.Transparent
	}
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			if old[y][x] != art.Transparent {
				continue
			}
			if opaque(x-1, y) || opaque(x+1, y) || opaque(x, y-1) || opaque(x, y+1) {
				grid[y][x] = o.Char
			}
		}
	}
	return l.SetCells(grid, l.Offset())
}
