package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/session"
)

func newEditor(t *testing.T, opts Options) (model, *session.Session) {
	t.Helper()
	sess, err := session.NewBlank(4, 2, session.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return New(sess, opts).(model), sess
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestEditor_TypeDraws(t *testing.T) {
	m, sess := newEditor(t, Options{Blank: '.'})
	m, _ = press(t, m, runes("a"), runes("b"), key(tea.KeyDown), key(tea.KeySpace))

	if got, want := sess.Canvas().Render('.'), "ab..\n.. .\n"; got != want {
		t.Errorf("canvas = %q, want %q", got, want)
	}
	if m.cursor != art.Pt(3, 1) {
		t.Errorf("cursor = %v, want (3,1)", m.cursor)
	}
	if sess.Brush != ' ' {
		t.Errorf("brush = %q, want ' '", sess.Brush)
	}
}

func TestEditor_CursorStaysInside(t *testing.T) {
	m, _ := newEditor(t, Options{})
	m, _ = press(t, m, key(tea.KeyLeft), key(tea.KeyUp))
	if m.cursor != art.Pt(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", m.cursor)
	}
	m, _ = press(t, m, key(tea.KeyEnd), key(tea.KeyRight), key(tea.KeyDown), key(tea.KeyDown))
	if m.cursor != art.Pt(3, 1) {
		t.Errorf("cursor = %v, want (3,1)", m.cursor)
	}
}

func TestEditor_UndoRedoErase(t *testing.T) {
	m, sess := newEditor(t, Options{})
	m, _ = press(t, m, runes("x"), key(tea.KeyBackspace))
	if got := sess.Canvas().Render('.'); got != "....\n....\n" {
		t.Fatalf("after erase = %q", got)
	}

	m, _ = press(t, m, key(tea.KeyCtrlZ))
	if got := sess.Canvas().Render('.'); got != "x...\n....\n" {
		t.Errorf("after undo = %q", got)
	}
	m, _ = press(t, m, key(tea.KeyCtrlY))
	if got := sess.Canvas().Render('.'); got != "....\n....\n" {
		t.Errorf("after redo = %q", got)
	}
	m, _ = press(t, m, key(tea.KeyCtrlY))
	if m.status != "nothing to redo" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditor_LayerCycle(t *testing.T) {
	m, sess := newEditor(t, Options{})
	sess.AddLayer("ink")
	sess.SelectLayer(0)

	m, _ = press(t, m, key(tea.KeyTab))
	if sess.ActiveIndex() != 1 {
		t.Errorf("active = %d, want 1", sess.ActiveIndex())
	}
	m, _ = press(t, m, key(tea.KeyTab))
	if sess.ActiveIndex() != 0 {
		t.Errorf("active = %d, want 0 after wrap", sess.ActiveIndex())
	}
	press(t, m, key(tea.KeyShiftTab))
	if sess.ActiveIndex() != 1 {
		t.Errorf("active = %d, want 1 after shift+tab", sess.ActiveIndex())
	}
}

func TestEditor_Save(t *testing.T) {
	saved := 0
	m, sess := newEditor(t, Options{Save: func(*session.Session) error {
		saved++
		return nil
	}})
	m, _ = press(t, m, runes("x"), key(tea.KeyCtrlS))
	if saved != 1 || sess.Dirty() {
		t.Errorf("saved=%d dirty=%v", saved, sess.Dirty())
	}

	m, _ = newEditor(t, Options{Save: func(*session.Session) error { return errors.New("disk full") }})
	m, _ = press(t, m, key(tea.KeyCtrlS))
	if !strings.Contains(m.status, "disk full") || m.level != 2 {
		t.Errorf("status = %q level %d", m.status, m.level)
	}
}

func TestEditor_QuitConfirmsUnsaved(t *testing.T) {
	m, _ := newEditor(t, Options{})
	_, cmd := press(t, m, key(tea.KeyEsc))
	if cmd == nil {
		t.Error("clean session should quit on first esc")
	}

	m, _ = newEditor(t, Options{})
	m, cmd = press(t, m, runes("x"), key(tea.KeyEsc))
	if cmd != nil || !m.confirmQuit {
		t.Fatal("dirty session should ask before quitting")
	}
	m, cmd = press(t, m, key(tea.KeyEsc))
	if cmd == nil || !m.quitting {
		t.Error("second esc should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestEditor_View(t *testing.T) {
	m, sess := newEditor(t, Options{Theme: "phosphor"})
	sess.Path = "cat.txt"
	m, _ = press(t, m, runes("Z"))
	v := m.View()
	for _, want := range []string{"cat.txt", "Background", "4x2", "Z"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("blueprint").Name != "blueprint" {
		t.Error("blueprint theme not found")
	}
	if GetTheme("nope").Name != "terminal" {
		t.Error("unknown theme should fall back to terminal")
	}
	if len(ThemeNames()) != 4 {
		t.Errorf("ThemeNames = %v", ThemeNames())
	}
	if nextTheme("paper").Name != "terminal" {
		t.Error("theme cycle should wrap")
	}
	for _, th := range Themes {
		if !art.ValidGlyph(th.BlankGlyph) {
			t.Errorf("%s: blank glyph %q", th.Name, th.BlankGlyph)
		}
	}
}

func TestEditor_BlankGlyph(t *testing.T) {
	m, _ := newEditor(t, Options{Theme: "blueprint"})
	if v := m.canvasView(); strings.Count(v, "+") != 8 {
		t.Errorf("theme blank glyph not used: %q", v)
	}

	m, _ = newEditor(t, Options{Theme: "blueprint", Blank: '~'})
	m, _ = press(t, m, key(tea.KeyRight), runes("Q"))
	v := m.canvasView()
	if strings.Contains(v, "+") || strings.Count(v, "~") != 7 || !strings.Contains(v, "Q") {
		t.Errorf("explicit blank glyph not used: %q", v)
	}
}
