package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciiart/internal/art"
)

// Version is stamped into UpdatedInVersion on every write.
const Version = 2

// Document is the structured art record.
type Document struct {
	Width            int           `json:"width" yaml:"width"`
	Height           int           `json:"height" yaml:"height"`
	CreatedInVersion int           `json:"createdInVersion" yaml:"createdInVersion"`
	UpdatedInVersion int           `json:"updatedInVersion" yaml:"updatedInVersion"`
	Layers           []LayerRecord `json:"layers" yaml:"layers"`
}

type LayerRecord struct {
	Name    string `json:"name" yaml:"name"`
	Visible bool   `json:"visible" yaml:"visible"`
	Rows    string `json:"rows" yaml:"rows"`
}

// NewDocument captures c in canvas space. Layer content outside the canvas
// is not stored. A zero created version means "this version".
func NewDocument(c *art.Canvas, created int) *Document {
	if created == 0 {
		created = Version
	}
	doc := &Document{
		Width:            c.Width(),
		Height:           c.Height(),
		CreatedInVersion: created,
		UpdatedInVersion: Version,
		Layers:           make([]LayerRecord, 0, c.LayerCount()),
	}
	for _, l := range c.Layers() {
		doc.Layers = append(doc.Layers, LayerRecord{
			Name:    l.Name(),
			Visible: l.Visible(),
			Rows:    canvasRows(l, c.Width(), c.Height()),
		})
	}
	return doc
}

func canvasRows(l *art.Layer, width, height int) string {
	var b strings.Builder
	off := l.Offset()
	for y := 0; y < height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			r, err := l.Get(x-off.X, y-off.Y)
			if err != nil {
				r = art.Transparent
			}
			b.WriteRune(art.FormatCell(r))
		}
	}
	return b.String()
}

// Canvas rebuilds a canvas from the document. Missing rows or cells are
// transparent; extra rows and cells are dropped.
func (d *Document) Canvas() (*art.Canvas, error) {
	c, err := art.NewCanvas(d.Width, d.Height)
	if err != nil {
		return nil, err
	}
	for i, rec := range d.Layers {
		l, err := art.NewLayer(rec.Name, d.Width, d.Height)
		if err != nil {
			return nil, err
		}
		l.SetVisible(rec.Visible)

		rows := strings.Split(rec.Rows, "\n")
		if len(rows) != d.Height {
			art.Logger().Warn("layer row count differs from height",
				"layer", rec.Name, "rows", len(rows), "height", d.Height)
		}
		for y := 0; y < d.Height && y < len(rows); y++ {
			if _, err := l.SetRow(y, strings.TrimSuffix(rows[y], "\r")); err != nil {
				return nil, fmt.Errorf("layer %d row %d: %w", i, y, err)
			}
		}
		if err := c.AddLayer(l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ReadDocument decodes a structured art record and builds its canvas.
func ReadDocument(r io.Reader, kind Kind) (*art.Canvas, *Document, error) {
	var doc Document
	switch kind {
	case KindJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, nil, err
		}
	case KindYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("%w: %s is not a structured format", ErrUnknownFormat, kind)
	}
	c, err := doc.Canvas()
	if err != nil {
		return nil, nil, err
	}
	return c, &doc, nil
}

// WriteDocument encodes c as a structured record, keeping created as the
// creation version (0 for a new document).
func WriteDocument(w io.Writer, c *art.Canvas, kind Kind, created int) error {
	doc := NewDocument(c, created)
	switch kind {
	case KindJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case KindYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	}
	return fmt.Errorf("%w: %s is not a structured format", ErrUnknownFormat, kind)
}
