package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-items/pkg/contentstore"
	memoryslot "github.com/tendant/content-items/pkg/contentstore/slot/memory"
)

func TestMemoryBackend(t *testing.T) {
	backend := memoryslot.New()
	ctx := context.Background()
	testKey := "contentItems"
	testData := []byte(`[{"id":"1","type":"headline","content":"Hi"}]`)

	t.Run("LoadMissing", func(t *testing.T) {
		data, err := backend.Load(ctx, testKey)
		assert.ErrorIs(t, err, contentstore.ErrSlotNotFound)
		assert.Nil(t, data)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, backend.Save(ctx, testKey, testData))

		data, err := backend.Load(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, testData, data)
	})

	t.Run("LoadReturnsCopy", func(t *testing.T) {
		data, err := backend.Load(ctx, testKey)
		require.NoError(t, err)
		data[0] = 'x'

		again, err := backend.Load(ctx, testKey)
		require.NoError(t, err)
		assert.Equal(t, testData, again)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, testKey))

		_, err := backend.Load(ctx, testKey)
		assert.ErrorIs(t, err, contentstore.ErrSlotNotFound)

		// Deleting again is fine
		assert.NoError(t, backend.Delete(ctx, testKey))
	})
}
