package art

import (
	"errors"
	"fmt"
)

// Domain errors for grid operations.
var (
	// ErrInvalidSize indicates a non-positive width or height.
	ErrInvalidSize = errors.New("art: width and height must be positive")

	// ErrOutOfRange indicates a coordinate or index outside its container.
	ErrOutOfRange = errors.New("art: out of range")

	// ErrNotSupported indicates an operation that has no implementation.
	ErrNotSupported = errors.New("art: operation not supported")

	// ErrInvalidGlyph indicates a rune that cannot be stored in a cell.
	ErrInvalidGlyph = errors.New("art: invalid glyph")
)

// RangeError reports direct grid access outside a layer.
type RangeError struct {
	X, Y          int
	Width, Height int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("art: point (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// GlyphError reports a rune rejected by ValidGlyph.
type GlyphError struct {
	Rune rune
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("art: glyph %q cannot be stored in a cell", e.Rune)
}

func (e *GlyphError) Unwrap() error {
	return ErrInvalidGlyph
}

// IndexError reports a layer index outside the canvas layer list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("art: layer index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}

func sizeError(w, h int) error {
	return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
}
