// Package storage keeps a library of canvases in a single SQLite file.
// Documents are stored in the structured JSON form produced by the format
// package and addressed either by id or by name.
package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/san-kum/asciiart/internal/art"
	"github.com/san-kum/asciiart/internal/format"
)

var ErrNotFound = errors.New("storage: document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	layers     INTEGER NOT NULL,
	body       BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_updated ON documents(updated_at);
`

type Store struct {
	path string
	db   *sql.DB
}

func New(path string) *Store {
	return &Store{path: path}
}

// Init opens the database, creating its directory and schema as needed.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("storage: open: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("storage: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("storage: exec schema: %w", err)
	}
	s.db = db
	art.Logger().Debug("library opened", "path", s.path)
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Layers    int       `json:"layers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Save stores c under name. Saving an existing name replaces its content
// and keeps its id and creation time.
func (s *Store) Save(ctx context.Context, name string, c *art.Canvas) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: empty document name")
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := format.WriteDocument(&buf, c, format.KindJSON, 0); err != nil {
		return "", err
	}

	now := time.Now().UTC().UnixMilli()
	id := uuid.NewString()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (id, name, width, height, layers, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			layers = excluded.layers,
			body = excluded.body,
			updated_at = excluded.updated_at
		RETURNING id`,
		id, name, c.Width(), c.Height(), c.LayerCount(), buf.Bytes(), now, now,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("storage: save %s: %w", name, err)
	}
	art.Logger().Info("document saved", "id", id, "name", name, "bytes", buf.Len())
	return id, nil
}

// List returns all documents, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, width, height, layers, created_at, updated_at
		FROM documents ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var created, updated int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Width, &e.Height, &e.Layers, &created, &updated); err != nil {
			return nil, fmt.Errorf("storage: list: %w", err)
		}
		e.CreatedAt = time.UnixMilli(created).UTC()
		e.UpdatedAt = time.UnixMilli(updated).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Load returns the canvas stored under ref, an id or a name.
func (s *Store) Load(ctx context.Context, ref string) (*art.Canvas, *Entry, error) {
	if err := s.Init(); err != nil {
		return nil, nil, err
	}
	var e Entry
	var body []byte
	var created, updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, width, height, layers, body, created_at, updated_at
		FROM documents WHERE id = ? OR name = ? LIMIT 1`, ref, ref,
	).Scan(&e.ID, &e.Name, &e.Width, &e.Height, &e.Layers, &body, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("storage: load %s: %w", ref, err)
	}
	e.CreatedAt = time.UnixMilli(created).UTC()
	e.UpdatedAt = time.UnixMilli(updated).UTC()

	c, _, err := format.ReadDocument(bytes.NewReader(body), format.KindJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: decode %s: %w", ref, err)
	}
	return c, &e, nil
}

// Delete removes the document stored under ref, an id or a name.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := s.Init(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ? OR name = ?`, ref, ref)
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", ref, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	art.Logger().Info("document deleted", "ref", ref)
	return nil
}
