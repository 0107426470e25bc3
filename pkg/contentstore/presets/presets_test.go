package presets

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-items/pkg/contentstore"
)

func TestNewDevelopment(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "dev-data")
	quiet := WithDevLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	store, cleanup, err := NewDevelopment(ctx, WithDevStorage(dir), WithDevKey("draft"), quiet)
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	store.Add(ctx, contentstore.ContentItem{ID: "1", Type: contentstore.ContentTypeHeadline, Content: "Hi"})
	assert.FileExists(t, filepath.Join(dir, "draft.json"))

	// A second store on the same directory sees the saved list
	again, _, err := NewDevelopment(ctx, WithDevStorage(dir), WithDevKey("draft"), quiet)
	require.NoError(t, err)
	assert.Equal(t, store.Items(), again.Items())

	cleanup()
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "dev-data should be removed after cleanup")
}

func TestNewTesting(t *testing.T) {
	ctx := context.Background()
	store, slot := NewTesting(t)

	assert.True(t, store.Persistent())
	store.Add(ctx, contentstore.ContentItem{ID: "1", Type: contentstore.ContentTypeTable, Content: "a|b"})

	data, err := slot.Load(ctx, store.Key())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","type":"table","content":"a|b"}]`, string(data))
}

func TestNewTesting_Isolated(t *testing.T) {
	ctx := context.Background()
	first, _ := NewTesting(t)
	second, _ := NewTesting(t, contentstore.WithKey("other"))

	first.Add(ctx, contentstore.ContentItem{ID: "1", Type: contentstore.ContentTypeImage, Content: "a.png"})
	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 0, second.Len())
	assert.Equal(t, "other", second.Key())
}

func TestNewProduction(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	t.Setenv("SLOT_URL", "file://"+dir)
	t.Setenv("SLOT_KEY", "prod")
	t.Setenv("LOG_LEVEL", "error")

	store, closeStore, err := NewProduction(ctx)
	require.NoError(t, err)
	defer closeStore()

	store.Add(ctx, contentstore.ContentItem{ID: "1", Type: contentstore.ContentTypeCodeBlock, Content: "x"})
	assert.FileExists(t, filepath.Join(dir, "prod.json"))
}

func TestNewProduction_InvalidEnv(t *testing.T) {
	t.Setenv("SLOT_URL", "ftp://nowhere")

	_, _, err := NewProduction(context.Background())
	assert.Error(t, err)
}
