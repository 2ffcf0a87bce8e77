package format

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/asciiart/internal/art"
)

var ErrUnknownFormat = errors.New("format: unknown file extension")

type Kind int

const (
	KindText Kind = iota
	KindJSON
	KindYAML
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindYAML:
		return "yaml"
	default:
		return "text"
	}
}

// Detect chooses a codec from the file extension.
func Detect(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return KindText, nil
	case ".aaf", ".json":
		return KindJSON, nil
	case ".yaml", ".yml":
		return KindYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ReadArtFile loads a canvas from path, choosing the codec by extension.
func ReadArtFile(path string) (*art.Canvas, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c *art.Canvas
	if kind == KindText {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		c, err = ReadText(f, name)
	} else {
		c, _, err = ReadDocument(f, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	art.Logger().Info("art loaded", "path", path, "format", kind.String(),
		"width", c.Width(), "height", c.Height(), "layers", c.LayerCount())
	return c, nil
}

// WriteArtFile saves c to path, choosing the codec by extension.
func WriteArtFile(path string, c *art.Canvas) error {
	kind, err := Detect(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if kind == KindText {
		err = WriteText(f, c)
	} else {
		err = WriteDocument(f, c, kind, 0)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	art.Logger().Info("art saved", "path", path, "format", kind.String())
	return f.Close()
}
