package analysis

import (
	"sort"

	"github.com/san-kum/asciiart/internal/art"
)

// RowDensity returns, for each canvas row, the fraction of cells that are
// opaque after composition.
func RowDensity(c *art.Canvas) []float64 {
	rows := make([]float64, c.Height())
	for p := range c.Compose() {
		rows[p.Y]++
	}
	for y := range rows {
		rows[y] /= float64(c.Width())
	}
	return rows
}

// ColumnDensity is RowDensity for columns.
func ColumnDensity(c *art.Canvas) []float64 {
	cols := make([]float64, c.Width())
	for p := range c.Compose() {
		cols[p.X]++
	}
	for x := range cols {
		cols[x] /= float64(c.Height())
	}
	return cols
}

func Coverage(c *art.Canvas) float64 {
	return float64(len(c.Compose())) / float64(c.Width()*c.Height())
}

// Histogram counts every composed glyph. Transparent cells are not
// counted.
func Histogram(c *art.Canvas) map[rune]int {
	h := make(map[rune]int)
	for _, r := range c.Compose() {
		h[r]++
	}
	return h
}

type Bin struct {
	Rune  rune
	Count int
}

// Sorted orders a histogram by descending count, then by rune.
func Sorted(h map[rune]int) []Bin {
	bins := make([]Bin, 0, len(h))
	for r, n := range h {
		bins = append(bins, Bin{Rune: r, Count: n})
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Rune < bins[j].Rune
	})
	return bins
}
