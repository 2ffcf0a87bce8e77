// Package script runs drawing scripts written in YAML against a session.
//
// A script names the canvas size, an optional list of layers, and a list of
// steps. Each step has an op and the fields that op needs:
//
//	name: frame
//	canvas: {width: 20, height: 6}
//	layers:
//	  - name: border
//	steps:
//	  - op: rect
//	    from: [0, 0]
//	    to: [19, 5]
//	    char: "#"
//	  - op: filter
//	    filter: mirror
//	    params: {axis: 1}
package script

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/filter"
	"github.com/san-kum/asciiart/internal/session"
)

type Script struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Canvas      CanvasSpec  `yaml:"canvas"`
	Layers      []LayerSpec `yaml:"layers"`
	Steps       []Step      `yaml:"steps"`
}

type CanvasSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LayerSpec describes a layer created before the first step. A zero size
// means the full canvas.
type LayerSpec struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Hidden bool   `yaml:"hidden"`
}

// Step is a single script operation. Coordinates are canvas space.
type Step struct {
	Op        string             `yaml:"op"`
	Layer     string             `yaml:"layer"`
	Char      string             `yaml:"char"`
	Thickness int                `yaml:"thickness"`
	From      []int              `yaml:"from"`
	To        []int              `yaml:"to"`
	Rect      []int              `yaml:"rect"`
	Radius    int                `yaml:"radius"`
	Filled    bool               `yaml:"filled"`
	Filter    string             `yaml:"filter"`
	Params    map[string]float64 `yaml:"params"`
	Whole     bool               `yaml:"whole"`
	Times     int                `yaml:"times"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return &s, nil
}

// NewSession builds the canvas and layers a script declares. Without any
// declared layer the canvas gets one full-size "Background" layer.
func NewSession(s *Script, opts session.Options) (*session.Session, error) {
	c, err := art.NewCanvas(s.Canvas.Width, s.Canvas.Height)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", s.Name, err)
	}
	specs := s.Layers
	if len(specs) == 0 {
		specs = []LayerSpec{{Name: "Background"}}
	}
	for _, spec := range specs {
		bounds := art.NewRect(spec.X, spec.Y, spec.Width, spec.Height)
		if spec.Width == 0 && spec.Height == 0 {
			bounds = c.Bounds()
		}
		l, err := art.NewLayerAt(spec.Name, bounds)
		if err != nil {
			return nil, fmt.Errorf("script %s: layer %q: %w", s.Name, spec.Name, err)
		}
		l.SetVisible(!spec.Hidden)
		if err := c.AddLayer(l); err != nil {
			return nil, err
		}
	}
	return session.New(c, opts)
}

// Run executes the steps in order. It stops at the first failing step or
// when ctx is done.
func Run(ctx context.Context, s *Script, sess *session.Session) error {
	for i, step := range s.Steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		art.Logger().Debug("script step", "script", s.Name, "step", i+1, "of", len(s.Steps), "op", step.Op)
		if err := runStep(sess, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	art.Logger().Info("script finished", "script", s.Name, "steps", len(s.Steps))
	return nil
}

func runStep(sess *session.Session, step Step) error {
	switch step.Op {
	case "layer":
		return selectLayer(sess, step.Layer)
	case "brush":
		if step.Char != "" {
			ch, err := char(step.Char)
			if err != nil {
				return err
			}
			sess.Brush = ch
		}
		if step.Thickness > 0 {
			sess.Thickness = step.Thickness
		}
		return nil
	case "select":
		if len(step.Rect) != 4 {
			return fmt.Errorf("rect needs [x, y, width, height], got %v", step.Rect)
		}
		return sess.SetSelection(art.NewRect(step.Rect[0], step.Rect[1], step.Rect[2], step.Rect[3]))
	case "deselect":
		sess.ClearSelection()
		return nil
	case "filter":
		f, err := filter.New(step.Filter, step.Params)
		if err != nil {
			return err
		}
		return sess.ApplyFilter(f, step.Whole)
	case "undo", "redo":
		return replay(sess, step)
	}
	return stroke(sess, step)
}

func stroke(sess *session.Session, step Step) error {
	ch := sess.Brush
	if step.Char != "" {
		var err error
		if ch, err = char(step.Char); err != nil {
			return err
		}
	}
	from, err := point(step.From, "from")
	if err != nil {
		return err
	}
	to := from
	switch {
	case step.Op == "circle" && step.Radius > 0:
		to = from.Add(art.Pt(step.Radius, 0))
	case len(step.To) > 0:
		if to, err = point(step.To, "to"); err != nil {
			return err
		}
	}

	name := step.Op
	if name == "point" {
		name = "pencil"
	}
	tool, err := session.ToolByName(name, ch, step.Filled)
	if err != nil {
		return fmt.Errorf("unknown op: %s", step.Op)
	}
	_, err = sess.Apply(tool, from, to)
	return err
}

func replay(sess *session.Session, step Step) error {
	times := step.Times
	if times < 1 {
		times = 1
	}
	for n := 0; n < times; n++ {
		var ok bool
		if step.Op == "undo" {
			ok = sess.Undo()
		} else {
			ok = sess.Redo()
		}
		if !ok {
			return fmt.Errorf("nothing to %s", step.Op)
		}
	}
	return nil
}

// selectLayer activates the named layer, adding a full-size one on top of
// the active layer when no layer has that name.
func selectLayer(sess *session.Session, name string) error {
	if name == "" {
		return fmt.Errorf("layer needs a name")
	}
	for i, l := range sess.Canvas().Layers() {
		if l.Name() == name {
			return sess.SelectLayer(i)
		}
	}
	_, err := sess.AddLayer(name)
	return err
}

func char(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("char must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if err := art.CheckGlyph(r); err != nil {
		return 0, fmt.Errorf("char %q: %w", s, err)
	}
	return r, nil
}

func point(v []int, field string) (art.Point, error) {
	if len(v) != 2 {
		return art.Point{}, fmt.Errorf("%s needs [x, y], got %v", field, v)
	}
	return art.Pt(v[0], v[1]), nil
}
