// Package timeline implements snapshot-based undo/redo for any subject that
// can be cloned and restored in place.
//
// A Timeline holds a fixed number of slots and a cursor. Capturing while
// the cursor is behind the newest slot discards the redo branch; capturing
// at full capacity evicts the oldest slot. Rollback and Rollforward never
// replace the subject, they restore its state from a stored clone, so
// references held elsewhere keep pointing at the live object.
//
// Each capture costs a full clone of the subject. For large canvases a
// copy-on-write grid or a per-cell diff log would satisfy the same
// contract at lower cost.
package timeline

import (
	"fmt"
	"log/slog"
)

// Subject is anything that can produce an independent clone of itself and
// later copy a clone's state back into itself.
type Subject[T any] interface {
	Clone() T
	Restore(snapshot T)
}

type Timeline[T Subject[T]] struct {
	subject T
	slots   []T
	filled  []bool
	cursor  int
	newest  int
	logger  *slog.Logger
}

// New binds a timeline to subject. The first slot holds a clone of the
// subject as it is now.
func New[T Subject[T]](subject T, capacity int) (*Timeline[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("timeline: capacity must be at least 1, got %d", capacity)
	}
	t := &Timeline[T]{
		subject: subject,
		slots:   make([]T, capacity),
		filled:  make([]bool, capacity),
		logger:  slog.New(slog.DiscardHandler),
	}
	t.slots[0] = subject.Clone()
	t.filled[0] = true
	return t, nil
}

// SetLogger routes capture and restore records to l at debug level. A nil
// l silences the timeline again.
func (t *Timeline[T]) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	t.logger = l
}

func (t *Timeline[T]) Subject() T    { return t.subject }
func (t *Timeline[T]) Capacity() int { return len(t.slots) }
func (t *Timeline[T]) Cursor() int   { return t.cursor }

// Len returns the number of occupied slots.
func (t *Timeline[T]) Len() int { return t.newest + 1 }

func (t *Timeline[T]) CanRollback() bool    { return t.cursor > 0 }
func (t *Timeline[T]) CanRollforward() bool { return t.cursor < t.newest }

// Capture stores a clone of the subject as the newest time point.
func (t *Timeline[T]) Capture() {
	var zero T
	if t.cursor < t.newest {
		for i := t.cursor + 1; i <= t.newest; i++ {
			t.slots[i] = zero
			t.filled[i] = false
		}
		t.newest = t.cursor
	}

	last := len(t.slots) - 1
	if t.cursor == last {
		copy(t.slots, t.slots[1:])
		copy(t.filled, t.filled[1:])
	} else {
		t.cursor++
	}
	t.slots[t.cursor] = t.subject.Clone()
	t.filled[t.cursor] = true
	t.newest = t.cursor

	t.logger.Debug("timeline capture", "cursor", t.cursor, "len", t.Len(), "capacity", len(t.slots))
}

// Rollback restores the previous time point. It reports false when there
// is nothing to undo.
func (t *Timeline[T]) Rollback() bool {
	if t.cursor == 0 {
		return false
	}
	t.cursor--
	t.restore()
	return true
}

// Rollforward restores the next time point. It reports false when there
// is nothing to redo.
func (t *Timeline[T]) Rollforward() bool {
	if t.cursor >= t.newest {
		return false
	}
	t.cursor++
	t.restore()
	return true
}

func (t *Timeline[T]) restore() {
	if !t.filled[t.cursor] {
		panic(fmt.Sprintf("timeline: cursor %d points at an empty slot", t.cursor))
	}
	t.subject.Restore(t.slots[t.cursor])
	t.logger.Debug("timeline restore", "cursor", t.cursor, "len", t.Len())
}
