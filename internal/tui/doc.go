// Package tui provides a terminal editor for layered ASCII art.
//
// The editor is a Bubble Tea program bound to one [session.Session]:
//
//   - [New]: builds the editor model for a session
//   - [Run]: starts the program and blocks until the user quits
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Arrows    - Move the cursor
//	Any char  - Draw it at the cursor with the current brush
//	Del/Bksp  - Erase at the cursor
//	Ctrl+Z/Y  - Undo / Redo
//	Tab       - Next layer (Shift+Tab previous)
//	Ctrl+V    - Toggle visibility of the active layer
//	Ctrl+T    - Cycle color themes
//	Ctrl+S    - Save
//	Esc       - Quit (twice when there are unsaved changes)
package tui
