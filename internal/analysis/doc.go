// Package analysis computes statistics of composed art.
//
// The package works on what a viewer would see, that is the result of
// [art.Canvas.Compose], not on individual layers:
//
//   - [RowDensity], [ColumnDensity]: fraction of opaque cells per row or column
//   - [Coverage]: fraction of opaque cells on the whole canvas
//   - [Histogram], [Sorted]: glyph usage counts
//   - [DominantPeriod]: strongest repeat length of a density profile
//
// # Repetition
//
// A wave filter or a tiled pattern shows up as a peak in the power
// spectrum of the column density:
//
//	period := analysis.DominantPeriod(analysis.ColumnDensity(c))
//	if period > 0 {
//	    // the art repeats every period columns
//	}
package analysis
