package contentstore

import "context"

// Slot is a key-value persistence backend holding the serialized list.
//
// Load returns an error wrapping ErrSlotNotFound when the key has no value.
type Slot interface {
	// Load reads the raw value stored under key
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
