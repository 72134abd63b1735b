// Package sqlite implements the SQLite backend for notekeeper. Notes and their
// items are stored in two tables of a notes.db file in the data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// FileName is the database name inside the data directory.
const FileName = "notes.db"

// Backend implements types.Store using SQLite.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	path     string
	db       *sql.DB
	log      *slog.Logger
}

var _ types.Store = (*Backend)(nil)

// NewBackend creates a detached SQLite backend. A nil logger discards log
// output.
func NewBackend(log *slog.Logger) *Backend {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Backend{log: log}
}

// Attach creates DataDir if needed, opens notes.db, and applies the schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.path = path
	b.attached = true
	b.log.Debug("sqlite store attached", "path", path)
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Load reads every note and its items in collection order. A database that
// has never been saved returns an error wrapping fs.ErrNotExist.
func (b *Backend) Load() ([]*types.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var savedAt string
	err := b.db.QueryRow("SELECT value FROM meta WHERE key = ?", metaSavedAt).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading %s: %w", b.path, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}

	notes, ids, err := b.loadNotes()
	if err != nil {
		return nil, err
	}
	if err := b.loadItems(notes, ids); err != nil {
		return nil, err
	}

	b.log.Debug("notes loaded", "path", b.path, "count", len(notes), "saved_at", savedAt)
	return notes, nil
}

func (b *Backend) loadNotes() ([]*types.Note, map[string]*types.Note, error) {
	rows, err := b.db.Query(
		"SELECT note_id, title, priority, category, archived FROM notes ORDER BY position")
	if err != nil {
		return nil, nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []*types.Note
	ids := make(map[string]*types.Note)
	for rows.Next() {
		var (
			id, title, category string
			priority            int
			archived            bool
		)
		if err := rows.Scan(&id, &title, &priority, &category, &archived); err != nil {
			return nil, nil, fmt.Errorf("scan note: %w", err)
		}
		n := types.NewNote(title, priority, category)
		n.SetArchived(archived)
		notes = append(notes, n)
		ids[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate notes: %w", err)
	}
	if notes == nil {
		notes = []*types.Note{}
	}
	return notes, ids, nil
}

func (b *Backend) loadItems(notes []*types.Note, ids map[string]*types.Note) error {
	rows, err := b.db.Query(
		"SELECT note_id, description, completed FROM items ORDER BY note_id, position")
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			noteID, description string
			completed           bool
		)
		if err := rows.Scan(&noteID, &description, &completed); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		n, ok := ids[noteID]
		if !ok {
			return fmt.Errorf("item references unknown note %s: %w", noteID, types.ErrMalformedDocument)
		}
		n.AddItem(types.NewItem(description, completed))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate items: %w", err)
	}
	return nil
}

// Save replaces every stored row with notes in a single transaction.
func (b *Backend) Save(notes []*types.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}

	noteStmt, err := tx.Prepare(
		"INSERT INTO notes (note_id, position, title, priority, category, archived) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare note insert: %w", err)
	}
	defer noteStmt.Close()

	itemStmt, err := tx.Prepare(
		"INSERT INTO items (item_id, note_id, position, description, completed) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for i, n := range notes {
		noteID := generateUUID()
		if _, err := noteStmt.Exec(noteID, i, n.Title(), n.Priority(), n.Category().String(), n.Archived()); err != nil {
			return fmt.Errorf("insert note %d: %w", i, err)
		}
		for j, it := range n.Items() {
			if _, err := itemStmt.Exec(generateUUID(), noteID, j, it.Description(), it.Completed()); err != nil {
				return fmt.Errorf("insert item %d of note %d: %w", j, i, err)
			}
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		metaSavedAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record save time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	b.log.Debug("notes saved", "path", b.path, "count", len(notes))
	return nil
}

// generateUUID generates a new UUID v7 for row ids.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
