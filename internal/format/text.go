package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/san-kum/asciiart/internal/art"
)

const maxLine = 1 << 20

// ReadText imports plain-text art as a canvas with one layer. The width is
// the longest line, the height the number of lines. EmptyGlyph and
// positions past the end of a line become transparent.
func ReadText(r io.Reader, layerName string) (*art.Canvas, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var lines []string
	width := 0
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if n := len([]rune(line)); n > width {
			width = n
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	c, err := art.NewCanvas(width, len(lines))
	if err != nil {
		return nil, err
	}
	l, err := art.NewLayer(layerName, width, len(lines))
	if err != nil {
		return nil, err
	}
	for y, line := range lines {
		if _, err := l.SetRow(y, line); err != nil {
			return nil, err
		}
	}
	if err := c.AddLayer(l); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteText exports the composed image of c.
func WriteText(w io.Writer, c *art.Canvas) error {
	_, err := io.WriteString(w, c.ToText())
	return err
}
