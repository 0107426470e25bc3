package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/content-items/pkg/contentstore"
)

const backendName = "postgres"

// Schema creates the slot table. Value is TEXT since JSONB rejects the
// \u0000 escape written for NUL characters.
const Schema = `CREATE TABLE IF NOT EXISTS content_slots (
	key VARCHAR(255) PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
);
ALTER TABLE content_slots ALTER COLUMN value TYPE TEXT;`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Backend implements contentstore.Slot using PostgreSQL
type Backend struct {
	db DBTX
}

// New creates a new PostgreSQL slot backend
func New(db DBTX) *Backend {
	return &Backend{db: db}
}

// NewWithPool creates a new PostgreSQL slot backend with connection pool
func NewWithPool(pool *pgxpool.Pool) *Backend {
	return &Backend{db: pool}
}

// Migrate creates the slot table if it does not exist
func (b *Backend) Migrate(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, Schema); err != nil {
		return handlePostgresError("migrate", err)
	}
	return nil
}

// Error handling helper
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Load reads the value stored under key
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRow(ctx, `SELECT value FROM content_slots WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("key %s: %w", key, contentstore.ErrSlotNotFound)
	} else if err != nil {
		return nil, &contentstore.SlotError{Backend: backendName, Key: key, Op: "load", Err: handlePostgresError("load", err)}
	}
	return data, nil
}

// Save upserts data under key
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO content_slots (key, value, updated_at)
		VALUES ($1, $2, now() AT TIME ZONE 'utc')
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(data))
	if err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: handlePostgresError("save", err)}
	}
	return nil
}

// Delete removes key
func (b *Backend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.Exec(ctx, `DELETE FROM content_slots WHERE key = $1`, key); err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "delete", Err: handlePostgresError("delete", err)}
	}
	return nil
}
