package contentstore

import "log/slog"

// DefaultKey is the slot key used when WithKey is not given.
const DefaultKey = "contentItems"

// Option represents a functional option for configuring the store
type Option func(*Store)

// WithSlot sets the persistence backend. A nil slot disables persistence.
func WithSlot(slot Slot) Option {
	return func(s *Store) {
		s.slot = slot
	}
}

// WithKey sets the slot key the list is stored under
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for mutation and fallback logging
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
