package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tendant/content-items/pkg/contentstore"
)

const backendName = "sqlite"

const schema = `CREATE TABLE IF NOT EXISTS content_slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Backend is a SQLite implementation of the contentstore.Slot interface
type Backend struct {
	db *sql.DB
}

// New opens (or creates) the database file at path and prepares the slot table
func New(ctx context.Context, path string) (*Backend, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	backend, err := NewWithDB(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return backend, nil
}

// NewWithDB prepares the slot table on an existing database handle
func NewWithDB(ctx context.Context, db *sql.DB) (*Backend, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create content_slots table: %w", err)
	}
	return &Backend{db: db}, nil
}

// Close closes the database handle
func (b *Backend) Close() error {
	return b.db.Close()
}

// Load reads the value stored under key
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM content_slots WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %s: %w", key, contentstore.ErrSlotNotFound)
	} else if err != nil {
		return nil, &contentstore.SlotError{Backend: backendName, Key: key, Op: "load", Err: err}
	}
	return data, nil
}

// Save upserts data under key
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO content_slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Unix())
	if err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: err}
	}
	return nil
}

// Delete removes key
func (b *Backend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM content_slots WHERE key = ?`, key); err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "delete", Err: err}
	}
	return nil
}
