package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/asciiart/internal/analysis"
	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/session"
)

type Options struct {
	Theme string
	// Blank is shown for transparent cells. Zero uses the theme's glyph.
	Blank rune
	// Save writes the session somewhere. Ctrl+S reports an error when nil.
	Save func(*session.Session) error
}

type model struct {
	sess   *session.Session
	cursor art.Point
	blank  rune
	save   func(*session.Session) error

	theme  Theme
	st     styles
	status string
	level  int // 0 info, 1 warn, 2 error

	confirmQuit bool
	quitting    bool

	width  int
	height int
}

// New returns the editor model for sess.
func New(sess *session.Session, opts Options) tea.Model {
	th := GetTheme(opts.Theme)
	return model{
		sess:   sess,
		blank:  opts.Blank,
		save:   opts.Save,
		theme:  th,
		st:     newStyles(th),
		width:  80,
		height: 24,
	}
}

// Run starts the editor on the alternate screen and blocks until it quits.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(New(sess, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	if key != "esc" {
		m.confirmQuit = false
	}

	switch key {
	case "esc", "ctrl+c":
		if m.sess.Dirty() && !m.confirmQuit && key == "esc" {
			m.confirmQuit = true
			m.setStatus(1, "unsaved changes, esc again to quit")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "up":
		m.move(0, -1)
	case "down":
		m.move(0, 1)
	case "left":
		m.move(-1, 0)
	case "right":
		m.move(1, 0)
	case "home":
		m.cursor.X = 0
	case "end":
		m.cursor.X = m.sess.Canvas().Width() - 1
	case "ctrl+z":
		if m.sess.Undo() {
			m.setStatus(0, "undo")
		} else {
			m.setStatus(1, "nothing to undo")
		}
	case "ctrl+y":
		if m.sess.Redo() {
			m.setStatus(0, "redo")
		} else {
			m.setStatus(1, "nothing to redo")
		}
	case "tab":
		m.cycleLayer(1)
	case "shift+tab":
		m.cycleLayer(-1)
	case "ctrl+v":
		if l, err := m.sess.ActiveLayer(); err == nil {
			l.SetVisible(!l.Visible())
			m.sess.Commit()
		}
	case "ctrl+t":
		m.theme = nextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
		m.setStatus(0, "theme "+m.theme.Name)
	case "ctrl+s":
		m.doSave()
	case "delete":
		m.draw(session.Eraser{})
	case "backspace":
		m.move(-1, 0)
		m.draw(session.Eraser{})
	case " ":
		m.drawRune(' ')
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			m.drawRune(msg.Runes[0])
		}
	}
	return m, nil
}

func (m *model) setStatus(level int, s string) {
	m.level, m.status = level, s
}

func (m *model) move(dx, dy int) {
	c := m.sess.Canvas()
	p := m.cursor.Add(art.Pt(dx, dy))
	if p.X < 0 || p.Y < 0 || p.X >= c.Width() || p.Y >= c.Height() {
		return
	}
	m.cursor = p
}

func (m *model) cycleLayer(step int) {
	n := m.sess.Canvas().LayerCount()
	if n == 0 {
		return
	}
	i := ((m.sess.ActiveIndex()+step)%n + n) % n
	if err := m.sess.SelectLayer(i); err != nil {
		m.setStatus(2, err.Error())
		return
	}
	l, _ := m.sess.ActiveLayer()
	m.setStatus(0, "layer "+l.Name())
}

func (m *model) drawRune(r rune) {
	m.sess.Brush = r
	m.draw(session.Pencil{Char: r})
	m.move(1, 0)
}

func (m *model) draw(t session.Tool) {
	if _, err := m.sess.Apply(t, m.cursor, m.cursor); err != nil {
		m.setStatus(2, err.Error())
	}
}

func (m *model) doSave() {
	if m.save == nil {
		m.setStatus(2, "no save target")
		return
	}
	if err := m.save(m.sess); err != nil {
		m.setStatus(2, "save failed: "+err.Error())
		return
	}
	m.sess.MarkSaved()
	m.setStatus(0, "saved")
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	c := m.sess.Canvas()

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.st.frame.Render(m.canvasView()))
	b.WriteString("\n ")
	b.WriteString(m.st.sparkline(analysis.ColumnDensity(c)))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// canvasView renders the composed canvas cell by cell so opaque glyphs,
// transparent cells and the cursor each get their own style.
func (m model) canvasView() string {
	c := m.sess.Canvas()
	composed := c.Compose()
	blank := m.blank
	if blank == 0 {
		blank = m.theme.BlankGlyph
	}

	lines := make([]string, c.Height())
	for y := range lines {
		var row strings.Builder
		for x := 0; x < c.Width(); x++ {
			p := art.Pt(x, y)
			r, opaque := composed[p]
			style := m.st.ink
			if !opaque {
				r, style = blank, m.st.blank
			}
			if p == m.cursor {
				style = m.st.cursor
			}
			row.WriteString(style.Render(string(r)))
		}
		lines[y] = row.String()
	}
	return strings.Join(lines, "\n")
}

func (m model) header() string {
	c := m.sess.Canvas()
	name := "-"
	visible := ""
	if l, err := m.sess.ActiveLayer(); err == nil {
		name = l.Name()
		if !l.Visible() {
			visible = " (hidden)"
		}
	}
	dirty := ""
	if m.sess.Dirty() {
		dirty = m.st.warn.Render(" *")
	}
	title := "asciiart"
	if m.sess.Path != "" {
		title = m.sess.Path
	}
	return fmt.Sprintf("%s%s  %s %s  %s %s  %s %s  %s %s",
		m.st.title.Render(title), dirty,
		m.st.label.Render("layer"), m.st.value.Render(fmt.Sprintf("%d/%d %s%s", m.sess.ActiveIndex()+1, c.LayerCount(), name, visible)),
		m.st.label.Render("size"), m.st.value.Render(fmt.Sprintf("%dx%d", c.Width(), c.Height())),
		m.st.label.Render("at"), m.st.value.Render(m.cursor.String()),
		m.st.label.Render("brush"), m.st.value.Render(fmt.Sprintf("%q", m.sess.Brush)),
	)
}

func (m model) footer() string {
	status := m.st.hint.Render("arrows move · type to draw · del erase · ^z/^y undo/redo · tab layer · ^s save · esc quit")
	if m.status != "" {
		switch m.level {
		case 1:
			status = m.st.warn.Render(m.status)
		case 2:
			status = m.st.errText.Render(m.status)
		default:
			status = m.st.ok.Render(m.status)
		}
	}
	return status
}
