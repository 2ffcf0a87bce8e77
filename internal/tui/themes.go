package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors the editor. Ink and Blank tell opaque cells from
// transparent ones; the cursor is drawn with its own pair so it stays
// visible on either.
type Theme struct {
	Name string

	Ink        lipgloss.Color
	Blank      lipgloss.Color
	BlankGlyph rune
	CursorFg   lipgloss.Color
	CursorBg   lipgloss.Color
	Frame      lipgloss.Color

	Title lipgloss.Color
	Label lipgloss.Color
	Value lipgloss.Color
	Saved lipgloss.Color
	Dirty lipgloss.Color
	Error lipgloss.Color
}

var (
	ThemeTerminal = Theme{
		Name:       "terminal",
		Ink:        lipgloss.Color("#ffffff"),
		Blank:      lipgloss.Color("#3a3a3a"),
		BlankGlyph: '·',
		CursorFg:   lipgloss.Color("#000000"),
		CursorBg:   lipgloss.Color("#0088ff"),
		Frame:      lipgloss.Color("#888888"),
		Title:      lipgloss.Color("#cccccc"),
		Label:      lipgloss.Color("#888888"),
		Value:      lipgloss.Color("#ffffff"),
		Saved:      lipgloss.Color("#00ff00"),
		Dirty:      lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemePhosphor = Theme{
		Name:       "phosphor",
		Ink:        lipgloss.Color("#00ff00"),
		Blank:      lipgloss.Color("#003300"),
		BlankGlyph: '.',
		CursorFg:   lipgloss.Color("#001100"),
		CursorBg:   lipgloss.Color("#88ff88"),
		Frame:      lipgloss.Color("#005500"),
		Title:      lipgloss.Color("#00cc00"),
		Label:      lipgloss.Color("#005500"),
		Value:      lipgloss.Color("#88ff88"),
		Saved:      lipgloss.Color("#88ff88"),
		Dirty:      lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeBlueprint = Theme{
		Name:       "blueprint",
		Ink:        lipgloss.Color("#e0f0ff"),
		Blank:      lipgloss.Color("#1f4a70"),
		BlankGlyph: '+',
		CursorFg:   lipgloss.Color("#001a33"),
		CursorBg:   lipgloss.Color("#ffd700"),
		Frame:      lipgloss.Color("#4488aa"),
		Title:      lipgloss.Color("#00a8cc"),
		Label:      lipgloss.Color("#4488aa"),
		Value:      lipgloss.Color("#e0f0ff"),
		Saved:      lipgloss.Color("#00ff88"),
		Dirty:      lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Ink:        lipgloss.Color("#1a1a1a"),
		Blank:      lipgloss.Color("#d0d0d0"),
		BlankGlyph: ' ',
		CursorFg:   lipgloss.Color("#ffffff"),
		CursorBg:   lipgloss.Color("#c0392b"),
		Frame:      lipgloss.Color("#8b6b8c"),
		Title:      lipgloss.Color("#2d1b2e"),
		Label:      lipgloss.Color("#8b6b8c"),
		Value:      lipgloss.Color("#1a1a1a"),
		Saved:      lipgloss.Color("#2e7d32"),
		Dirty:      lipgloss.Color("#e67e22"),
		Error:      lipgloss.Color("#c0392b"),
	}

	Themes = []Theme{
		ThemeTerminal,
		ThemePhosphor,
		ThemeBlueprint,
		ThemePaper,
	}
)

// GetTheme returns a theme by name, falling back to terminal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeTerminal
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
