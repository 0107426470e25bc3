package presets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/tendant/content-items/pkg/contentstore"
	"github.com/tendant/content-items/pkg/contentstore/config"
	fsslot "github.com/tendant/content-items/pkg/contentstore/slot/fs"
	memoryslot "github.com/tendant/content-items/pkg/contentstore/slot/memory"
)

// Configuration Presets
//
// This package provides ready-made stores for common use cases.

// NewDevelopment creates a store configured for local development.
//
// Features:
//   - Filesystem slot at ./dev-data/ (persistent across restarts)
//   - Debug logging to stderr
//
// Returns the store, a cleanup function that removes the data directory, and
// an error if the directory cannot be created.
//
// Example:
//
//	store, cleanup, err := presets.NewDevelopment(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
func NewDevelopment(ctx context.Context, opts ...DevelopmentOption) (*contentstore.Store, func(), error) {
	cfg := &devConfig{
		storageDir: "./dev-data",
		key:        contentstore.DefaultKey,
		logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	backend, err := fsslot.New(fsslot.Config{BaseDir: cfg.storageDir})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create filesystem slot: %w", err)
	}

	store := contentstore.New(ctx,
		contentstore.WithSlot(backend),
		contentstore.WithKey(cfg.key),
		contentstore.WithLogger(cfg.logger),
	)

	cleanup := func() {
		os.RemoveAll(cfg.storageDir)
	}

	return store, cleanup, nil
}

type devConfig struct {
	storageDir string
	key        string
	logger     *slog.Logger
}

// DevelopmentOption customizes NewDevelopment
type DevelopmentOption func(*devConfig)

// WithDevStorage sets the directory used for the filesystem slot
func WithDevStorage(dir string) DevelopmentOption {
	return func(c *devConfig) {
		c.storageDir = dir
	}
}

// WithDevKey sets the slot key
func WithDevKey(key string) DevelopmentOption {
	return func(c *devConfig) {
		c.key = key
	}
}

// WithDevLogger replaces the debug logger
func WithDevLogger(logger *slog.Logger) DevelopmentOption {
	return func(c *devConfig) {
		c.logger = logger
	}
}

// NewTesting creates a store for unit tests on a fresh in-memory slot. The
// slot is returned so tests can inspect what was persisted.
//
// Example:
//
//	func TestEditor(t *testing.T) {
//	    store, slot := presets.NewTesting(t)
//	    ...
//	}
func NewTesting(t testing.TB, opts ...contentstore.Option) (*contentstore.Store, *memoryslot.Backend) {
	t.Helper()

	slot := memoryslot.New()
	options := []contentstore.Option{
		contentstore.WithSlot(slot),
		contentstore.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	options = append(options, opts...)

	store := contentstore.New(context.Background(), options...)
	t.Cleanup(func() {
		slot.Delete(context.Background(), store.Key())
	})
	return store, slot
}

// NewProduction creates a store from environment configuration (SLOT_URL,
// SLOT_KEY, LOG_LEVEL). The returned close function releases the slot
// backend.
func NewProduction(ctx context.Context) (*contentstore.Store, func() error, error) {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return cfg.BuildStore(ctx, logger)
}
