package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tendant/content-items/pkg/contentstore"
)

const backendName = "fs"

// Backend is a filesystem implementation of the contentstore.Slot interface.
// Each key is stored as <BaseDir>/<key>.json.
type Backend struct {
	mu      sync.RWMutex
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for slot files
}

// New creates a new filesystem slot backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir: config.BaseDir,
	}, nil
}

func (b *Backend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(b.baseDir, key+".json"), nil
}

// Load reads the file for key
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	filePath, err := b.path(key)
	if err != nil {
		return nil, &contentstore.SlotError{Backend: backendName, Key: key, Op: "load", Err: err}
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("key %s: %w", key, contentstore.ErrSlotNotFound)
	} else if err != nil {
		return nil, &contentstore.SlotError{Backend: backendName, Key: key, Op: "load", Err: err}
	}
	return data, nil
}

// Save writes data to a temporary file and renames it over the file for key
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	filePath, err := b.path(key)
	if err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(b.baseDir, key+".*.tmp")
	if err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: fmt.Errorf("failed to create file: %w", err)}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: fmt.Errorf("failed to write file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: fmt.Errorf("failed to close file: %w", err)}
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: fmt.Errorf("failed to rename file: %w", err)}
	}
	return nil
}

// Delete removes the file for key
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	filePath, err := b.path(key)
	if err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "delete", Err: err}
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "delete", Err: fmt.Errorf("failed to delete file: %w", err)}
	}
	return nil
}
