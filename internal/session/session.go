// Package session holds the state of one editing session: the canvas, the
// active layer, brush settings, selection and undo history. It replaces any
// notion of a global current document; callers own the Session and pass it
// to whatever needs it.
package session

import (
	"fmt"

	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/filter"
	"github.com/san-kum/asciiart/internal/raster"
	"github.com/san-kum/asciiart/internal/timeline"
)

type Options struct {
	HistoryCapacity int
	Brush           rune
	Thickness       int
	Path            string
}

type Session struct {
	canvas  *art.Canvas
	history *timeline.Timeline[*art.Canvas]
	active  int

	Brush     rune
	Thickness int
	Path      string

	selection art.Rect
	selecting bool
	dirty     bool
}

func New(c *art.Canvas, opts Options) (*Session, error) {
	if c == nil {
		return nil, fmt.Errorf("session: nil canvas")
	}
	if opts.HistoryCapacity == 0 {
		opts.HistoryCapacity = 64
	}
	if opts.Brush == 0 {
		opts.Brush = '#'
	}
	if opts.Thickness < 1 {
		opts.Thickness = 1
	}
	history, err := timeline.New(c, opts.HistoryCapacity)
	if err != nil {
		return nil, err
	}
	history.SetLogger(art.Logger())
	return &Session{
		canvas:    c,
		history:   history,
		active:    c.LayerCount() - 1,
		Brush:     opts.Brush,
		Thickness: opts.Thickness,
		Path:      opts.Path,
	}, nil
}

// NewBlank starts a session on a w×h canvas with one empty layer.
func NewBlank(w, h int, opts Options) (*Session, error) {
	c, err := art.NewCanvas(w, h)
	if err != nil {
		return nil, err
	}
	l, err := art.NewLayer("Background", w, h)
	if err != nil {
		return nil, err
	}
	if err := c.AddLayer(l); err != nil {
		return nil, err
	}
	return New(c, opts)
}

func (s *Session) Canvas() *art.Canvas { return s.canvas }
func (s *Session) ActiveIndex() int    { return s.active }
func (s *Session) Dirty() bool         { return s.dirty }
func (s *Session) MarkSaved()          { s.dirty = false }

func (s *Session) History() *timeline.Timeline[*art.Canvas] { return s.history }

func (s *Session) ActiveLayer() (*art.Layer, error) {
	return s.canvas.Layer(s.active)
}

func (s *Session) SelectLayer(i int) error {
	if _, err := s.canvas.Layer(i); err != nil {
		return err
	}
	s.active = i
	return nil
}

// SetSelection restricts drawing to r, given in canvas space.
func (s *Session) SetSelection(r art.Rect) error {
	if r.Empty() {
		return fmt.Errorf("%w: selection %v", art.ErrInvalidSize, r)
	}
	s.selection, s.selecting = r, true
	return nil
}

func (s *Session) ClearSelection() { s.selecting = false }

func (s *Session) Selection() (art.Rect, bool) { return s.selection, s.selecting }

// Drawer returns a drawer scoped to the active layer with the selection
// translated into layer space.
func (s *Session) Drawer() (*raster.Drawer, error) {
	l, err := s.ActiveLayer()
	if err != nil {
		return nil, err
	}
	d := raster.New(l)
	d.BrushThickness = s.Thickness
	if s.selecting {
		off := l.Offset()
		d.Clamp = s.selection.Translate(-off.X, -off.Y)
		d.ClampEnabled = true
	}
	return d, nil
}

// Apply runs tool on the active layer between two canvas points. A time
// point is captured when at least one cell changed. It returns the number
// of cells drawn.
func (s *Session) Apply(tool Tool, from, to art.Point) (int, error) {
	d, err := s.Drawer()
	if err != nil {
		return 0, err
	}
	changed := 0
	d.OnDraw = func(rune, int, int) { changed++ }

	l := d.Layer()
	if err := tool.Stroke(d, l.ToLayerPoint(from), l.ToLayerPoint(to)); err != nil {
		return changed, fmt.Errorf("%s: %w", tool.Name(), err)
	}
	if changed > 0 {
		s.Commit()
	}
	art.Logger().Debug("tool applied", "tool", tool.Name(), "layer", l.Name(), "cells", changed)
	return changed, nil
}

// Commit captures the current canvas as a new time point.
func (s *Session) Commit() {
	s.history.Capture()
	s.dirty = true
}

// Undo and Redo keep the active layer selected when it survives the
// restore, wherever it ends up in the stack.
func (s *Session) Undo() bool {
	return s.restore(s.history.Rollback)
}

func (s *Session) Redo() bool {
	return s.restore(s.history.Rollforward)
}

func (s *Session) restore(step func() bool) bool {
	active, _ := s.ActiveLayer()
	if !step() {
		return false
	}
	s.dirty = true
	if i := s.canvas.IndexOf(active); i >= 0 {
		s.active = i
	} else if s.active >= s.canvas.LayerCount() {
		s.active = s.canvas.LayerCount() - 1
	}
	return true
}

// ApplyFilter runs f on the active layer, or on every layer when whole is
// set, and captures a time point.
func (s *Session) ApplyFilter(f filter.Filter, whole bool) error {
	var err error
	if whole {
		err = filter.Apply(f, s.canvas)
	} else {
		var l *art.Layer
		if l, err = s.ActiveLayer(); err == nil {
			err = f.ApplyLayer(l)
		}
	}
	if err != nil {
		return fmt.Errorf("filter %s: %w", f.Name(), err)
	}
	s.Commit()
	return nil
}

// AddLayer inserts a canvas-sized layer above the active one and selects it.
func (s *Session) AddLayer(name string) (*art.Layer, error) {
	l, err := art.NewLayer(name, s.canvas.Width(), s.canvas.Height())
	if err != nil {
		return nil, err
	}
	if err := s.InsertLayer(s.active+1, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Session) InsertLayer(i int, l *art.Layer) error {
	if err := s.canvas.InsertLayer(i, l); err != nil {
		return err
	}
	s.active = i
	s.Commit()
	return nil
}

func (s *Session) RemoveLayer(i int) error {
	if _, err := s.canvas.RemoveLayer(i); err != nil {
		return err
	}
	if s.active >= s.canvas.LayerCount() {
		s.active = s.canvas.LayerCount() - 1
	}
	s.Commit()
	return nil
}

// MoveLayer moves layer from to index to. The active layer stays
// selected.
func (s *Session) MoveLayer(from, to int) error {
	active, _ := s.ActiveLayer()
	if err := s.canvas.MoveLayer(from, to); err != nil {
		return err
	}
	if i := s.canvas.IndexOf(active); i >= 0 {
		s.active = i
	}
	s.Commit()
	return nil
}

// MergeDown merges the active layer into the one beneath it.
func (s *Session) MergeDown() error {
	if err := s.canvas.MergeDown(s.active); err != nil {
		return err
	}
	s.active--
	s.Commit()
	return nil
}

func (s *Session) Crop(r art.Rect) error {
	if err := s.canvas.Crop(r); err != nil {
		return err
	}
	s.selecting = false
	s.Commit()
	return nil
}
