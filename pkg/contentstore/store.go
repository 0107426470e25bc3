package contentstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/exp/slices"
)

// Observer receives the current list on subscription and after every
// mutation. The slice is shared with the store and must not be modified.
type Observer func(items []ContentItem)

// Store holds the authoritative ordered list of content items.
//
// Mutations are serialized: the list is replaced, observers are called in
// registration order, then the list is written to the slot. Observers may
// read the store and unsubscribe from inside a callback, but must not mutate
// it or subscribe, since the mutation in progress still holds the write lock.
type Store struct {
	writeMu sync.Mutex

	mu        sync.RWMutex
	items     []ContentItem
	observers map[uint64]Observer
	order     []uint64
	nextID    uint64

	slot       Slot
	key        string
	persistent bool
	condition  error
	logger     *slog.Logger
}

// New creates a store and loads its initial list from the configured slot.
// Loading never fails: missing, malformed or unreachable data yields an
// empty list, and the reason is available from Condition.
func New(ctx context.Context, options ...Option) *Store {
	s := &Store{
		key:       DefaultKey,
		logger:    slog.Default(),
		observers: make(map[uint64]Observer),
	}

	for _, option := range options {
		option(s)
	}

	s.items = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []ContentItem {
	if s.slot == nil {
		s.condition = ErrPersistenceUnavailable
		s.logger.Debug("No slot backend configured, persistence disabled", "key", s.key)
		return []ContentItem{}
	}

	data, err := s.slot.Load(ctx, s.key)
	if errors.Is(err, ErrSlotNotFound) {
		s.persistent = true
		s.condition = ErrSlotNotFound
		s.logger.Debug("Slot is empty, starting with no items", "key", s.key)
		return []ContentItem{}
	}
	if err != nil {
		s.condition = fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
		s.logger.Warn("Slot backend unavailable, persistence disabled", "key", s.key, "err", err)
		return []ContentItem{}
	}

	s.persistent = true
	items, err := Decode(data)
	if err != nil {
		s.condition = err
		s.logger.Warn("Slot data is malformed, starting with no items", "key", s.key, "err", err)
		return []ContentItem{}
	}

	s.logger.Debug("Loaded content items", "key", s.key, "count", len(items))
	return items
}

// Condition returns the fallback condition observed while loading: nil when
// the slot loaded cleanly, otherwise an error matching ErrSlotNotFound,
// ErrMalformedSlot or ErrPersistenceUnavailable.
func (s *Store) Condition() error {
	return s.condition
}

// Persistent reports whether mutations are written to a slot.
func (s *Store) Persistent() bool {
	return s.persistent
}

// Key returns the slot key the list is stored under.
func (s *Store) Key() string {
	return s.key
}

// Items returns a copy of the current list.
func (s *Store) Items() []ContentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of items in the current list.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Add appends item to the end of the list. Invalid UTF-8 in its fields is
// replaced with U+FFFD so the list matches its persisted form.
func (s *Store) Add(ctx context.Context, item ContentItem) {
	s.logger.Debug("Adding item", "id", item.ID, "type", item.Type)
	s.apply(ctx, func(items []ContentItem) []ContentItem {
		return append(slices.Clone(items), NormalizeItem(item))
	})
}

// UpdateAt replaces the content of the item at index, keeping its ID and
// type. An out of range index leaves the list unchanged.
func (s *Store) UpdateAt(ctx context.Context, index int, content string) {
	s.logger.Debug("Updating item", "index", index, "content_length", len(content))
	s.apply(ctx, func(items []ContentItem) []ContentItem {
		updated := slices.Clone(items)
		if index >= 0 && index < len(updated) {
			updated[index].Content = NormalizeText(content)
		}
		return updated
	})
}

// RemoveAt drops the item at index. An out of range index leaves the list
// unchanged.
func (s *Store) RemoveAt(ctx context.Context, index int) {
	s.logger.Debug("Removing item", "index", index)
	s.apply(ctx, func(items []ContentItem) []ContentItem {
		updated := slices.Clone(items)
		if index >= 0 && index < len(updated) {
			updated = slices.Delete(updated, index, index+1)
		}
		return updated
	})
}

// Set replaces the whole list with a copy of items.
func (s *Store) Set(ctx context.Context, items []ContentItem) {
	s.logger.Debug("Setting items", "count", len(items))
	s.apply(ctx, func([]ContentItem) []ContentItem {
		return normalizeItems(items)
	})
}

// Subscribe registers observer. It is called once right away with the
// current list and again after every mutation until the returned function
// is called. The returned function may be called more than once.
func (s *Store) Subscribe(observer Observer) (unsubscribe func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.order = append(s.order, id)
	current := s.items
	s.mu.Unlock()

	observer(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.observers, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// apply replaces the list, notifies observers, then persists.
func (s *Store) apply(ctx context.Context, mutate func([]ContentItem) []ContentItem) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	updated := mutate(s.items)
	s.items = updated
	observers := make([]Observer, 0, len(s.order))
	for _, id := range s.order {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	for _, observer := range observers {
		observer(updated)
	}

	s.save(ctx, updated)
}

func (s *Store) save(ctx context.Context, items []ContentItem) {
	if !s.persistent {
		return
	}

	data, err := Encode(items)
	if err != nil {
		s.logger.Warn("Failed to encode content items", "key", s.key, "err", err)
		return
	}
	if err := s.slot.Save(ctx, s.key, data); err != nil {
		s.logger.Warn("Failed to persist content items", "key", s.key, "err", err)
	}
}
