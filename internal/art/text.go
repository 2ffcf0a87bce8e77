package art

import (
	"unicode"
	"unicode/utf8"
)

// EmptyGlyph stands for a transparent cell in the persisted text form. It
// is distinct from ' ' so that intentional blanks survive a round trip.
const EmptyGlyph rune = '\u0000'

// InvalidCharacters can never be stored as an opaque cell. Line breaks
// would split a persisted row and EmptyGlyph reads back as transparent.
var InvalidCharacters = []rune{'\n', '\r', '\t', '\v', '\f', '\b', '\a', EmptyGlyph}

// ValidGlyph reports whether r can be stored as an opaque cell. Besides
// InvalidCharacters it rejects every other control character and runes
// that do not encode.
func ValidGlyph(r rune) bool {
	if r == Transparent || r == utf8.RuneError || !utf8.ValidRune(r) {
		return false
	}
	for _, bad := range InvalidCharacters {
		if r == bad {
			return false
		}
	}
	return !unicode.IsControl(r)
}

// CheckGlyph returns a *GlyphError unless r is a valid glyph or
// Transparent.
func CheckGlyph(r rune) error {
	if r == Transparent || ValidGlyph(r) {
		return nil
	}
	return &GlyphError{Rune: r}
}

// FormatCell maps a cell to its persisted glyph.
func FormatCell(r rune) rune {
	if r == Transparent {
		return EmptyGlyph
	}
	return r
}

// ParseCell maps a persisted glyph back to a cell.
func ParseCell(r rune) rune {
	if r == EmptyGlyph {
		return Transparent
	}
	return r
}

// SetRow overwrites row y from its persisted text form. Cells past the end
// of row and runes ValidGlyph rejects become transparent; runes past the
// layer width are dropped. It reports whether row had to be truncated.
func (l *Layer) SetRow(y int, row string) (truncated bool, err error) {
	if y < 0 || y >= l.Height() {
		return false, &RangeError{X: 0, Y: y, Width: l.Width(), Height: l.Height()}
	}
	cells := l.data[y]
	x := 0
	for _, r := range row {
		if x >= len(cells) {
			truncated = true
			break
		}
		if ValidGlyph(r) {
			cells[x] = r
		} else {
			cells[x] = Transparent
		}
		x++
	}
	for ; x < len(cells); x++ {
		cells[x] = Transparent
	}
	l.emitProperty("data")
	return truncated, nil
}
