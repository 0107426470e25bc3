package contentstore

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrSlotNotFound indicates the slot key holds no value
	ErrSlotNotFound = errors.New("slot not found")

	// ErrMalformedSlot indicates the stored value is not a JSON list of content items
	ErrMalformedSlot = errors.New("malformed slot data")

	// ErrPersistenceUnavailable indicates no slot backend can be used by the store
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// SlotError represents an error related to a slot backend operation
type SlotError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("slot operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *SlotError) Unwrap() error {
	return e.Err
}
