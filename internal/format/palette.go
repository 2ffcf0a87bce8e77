package format

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciiart/internal/art"
)

type Palette struct {
	Name       string
	Characters []rune
}

type paletteRecord struct {
	Name       string   `json:"name" yaml:"name"`
	Characters []string `json:"characters" yaml:"characters"`
}

// InvalidCharError reports a character rejected by art.ValidGlyph, or a
// record entry that is not exactly one character.
type InvalidCharError struct {
	Index int
	Value string
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("format: invalid palette character %q at index %d", e.Value, e.Index)
}

// ParsePaletteText reads every character of text in order. Line breaks
// separate and are skipped; duplicates are kept.
func ParsePaletteText(name, text string) (*Palette, error) {
	p := &Palette{Name: name}
	i := 0
	for _, r := range text {
		if r == '\n' || r == '\r' {
			continue
		}
		if !art.ValidGlyph(r) {
			return nil, &InvalidCharError{Index: i, Value: string(r)}
		}
		p.Characters = append(p.Characters, r)
		i++
	}
	return p, nil
}

func (rec *paletteRecord) palette() (*Palette, error) {
	p := &Palette{Name: rec.Name, Characters: make([]rune, 0, len(rec.Characters))}
	for i, s := range rec.Characters {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || !art.ValidGlyph(r) {
			return nil, &InvalidCharError{Index: i, Value: s}
		}
		p.Characters = append(p.Characters, r)
	}
	return p, nil
}

func ReadPalette(path string) (*Palette, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if kind == KindText {
		return ParsePaletteText(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), string(data))
	}

	var rec paletteRecord
	if kind == KindJSON {
		err = json.Unmarshal(data, &rec)
	} else {
		err = yaml.Unmarshal(data, &rec)
	}
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}
	return rec.palette()
}

func WritePalette(path string, p *Palette) error {
	kind, err := Detect(path)
	if err != nil {
		return err
	}
	for i, r := range p.Characters {
		if !art.ValidGlyph(r) {
			return &InvalidCharError{Index: i, Value: string(r)}
		}
	}
	var data []byte
	switch kind {
	case KindText:
		data = []byte(string(p.Characters))
	case KindJSON, KindYAML:
		rec := paletteRecord{Name: p.Name, Characters: make([]string, len(p.Characters))}
		for i, r := range p.Characters {
			rec.Characters[i] = string(r)
		}
		if kind == KindJSON {
			data, err = json.MarshalIndent(rec, "", "  ")
		} else {
			data, err = yaml.Marshal(rec)
		}
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
