package filter

import "github.com/san-kum/asciiart/internal/art"

// Mirror reflects the cells of Area (layer space, nil for the whole
// layer) along Axis. Cells outside Area are kept.
type Mirror struct {
	Axis Axis
	Area *art.Rect
}

func (m *Mirror) Name() string { return "mirror" }

func (m *Mirror) ApplyLayer(l *art.Layer) error {
	a := area(l, m.Area)
	if a.Empty() {
		return nil
	}
	old := l.Cells()
	grid := l.Cells()
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			if m.Axis == AxisX {
				grid[y][x] = old[y][a.X*2+a.Width-x-1]
			} else {
				grid[y][x] = old[a.Y*2+a.Height-y-1][x]
			}
		}
	}
	return l.SetCells(grid, l.Offset())
}

// ApplyCanvas mirrors every whole layer and negates its offset on the
// mirrored axis.
func (m *Mirror) ApplyCanvas(c *art.Canvas) error {
	whole := &Mirror{Axis: m.Axis}
	for _, l := range c.Layers() {
		if err := whole.ApplyLayer(l); err != nil {
			return err
		}
		off := l.Offset()
		if m.Axis == AxisX {
			off.X = -off.X
		} else {
			off.Y = -off.Y
		}
		l.SetOffset(off)
	}
	return nil
}
