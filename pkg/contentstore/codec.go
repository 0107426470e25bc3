package contentstore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes items to the persisted JSON array format. A nil list
// encodes as an empty array.
func Encode(items []ContentItem) ([]byte, error) {
	if items == nil {
		items = []ContentItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content items: %w", err)
	}
	return data, nil
}

// Decode parses the persisted JSON array format. Empty input and a JSON null
// decode to an empty list.
func Decode(data []byte) ([]ContentItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []ContentItem{}, nil
	}

	var items []ContentItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}
	if items == nil {
		items = []ContentItem{}
	}
	return items, nil
}
