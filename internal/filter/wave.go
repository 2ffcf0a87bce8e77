package filter

import (
	"fmt"
	"math"

	"github.com/san-kum/asciiart/internal/art"
)

// Wave displaces each row (AxisX) or column (AxisY) i by
// round(sin(Speed*i + Phase) * Strength) cells. The grid grows by
// 2*Strength on the displaced axis and the offset moves by -Strength so
// undisplaced content stays in place.
type Wave struct {
	Axis     Axis
	Speed    float64
	Phase    float64
	Strength int
}

func (w *Wave) Name() string { return "wave" }

func (w *Wave) shift(i int) int {
	return int(math.Round(math.Sin(w.Speed*float64(i)+w.Phase) * float64(w.Strength)))
}

func (w *Wave) ApplyLayer(l *art.Layer) error {
	if w.Strength < 0 {
		return fmt.Errorf("%w: wave strength %d", art.ErrInvalidSize, w.Strength)
	}
	old := l.Cells()
	width, height := l.Width(), l.Height()
	off := l.Offset()
	s := w.Strength

	var grid [][]rune
	if w.Axis == AxisX {
		grid = newGrid(width+2*s, height)
		for y := 0; y < height; y++ {
			d := w.shift(y)
			for x := 0; x < width; x++ {
				grid[y][x+s+d] = old[y][x]
			}
		}
		off.X -= s
	} else {
		grid = newGrid(width, height+2*s)
		for x := 0; x < width; x++ {
			d := w.shift(x)
			for y := 0; y < height; y++ {
				grid[y+s+d][x] = old[y][x]
			}
		}
		off.Y -= s
	}
	return l.SetCells(grid, off)
}
