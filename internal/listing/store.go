package listing

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateID is returned when a record id already exists in the store.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnknownID is returned when a record id does not exist in the store.
	ErrUnknownID = errors.New("unknown id")
	// ErrIDChanged is returned when a replacement tries to change the record id.
	ErrIDChanged = errors.New("id is immutable")
)

// InvariantError reports a programmer error detected by the store. It never
// leaves the store half-mutated.
type InvariantError struct {
	Op  string
	ID  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsInvariant reports whether err is (or wraps) an InvariantError.
func IsInvariant(err error) bool {
	var inv *InvariantError
	return errors.As(err, &inv)
}

// Guard validates a replacement before it is published.
type Guard[T any] func(old, next T) error

// StoreOption configures a Store.
type StoreOption[T any] func(*Store[T])

// WithGuard installs a replacement guard.
func WithGuard[T any](guard Guard[T]) StoreOption[T] {
	return func(s *Store[T]) {
		s.guard = guard
	}
}

// Store is an ordered in-memory collection owned by a single table. Every
// mutation publishes a fresh slice, so a Snapshot is never modified after it
// has been handed out.
type Store[T any] struct {
	mu    sync.RWMutex
	id    func(T) string
	guard Guard[T]
	items []T
	index map[string]int
}

// NewStore builds a store from seed records, preserving their order.
func NewStore[T any](id func(T) string, seed []T, opts ...StoreOption[T]) (*Store[T], error) {
	s := &Store[T]{id: id, index: make(map[string]int, len(seed))}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	items := make([]T, 0, len(seed))
	for _, item := range seed {
		key := id(item)
		if _, exists := s.index[key]; exists {
			return nil, &InvariantError{Op: "seed", ID: key, Err: ErrDuplicateID}
		}
		s.index[key] = len(items)
		items = append(items, item)
	}
	s.items = items
	return s, nil
}

// Snapshot returns the current records in insertion order. Callers must treat
// the slice as read-only.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

// Has reports whether a record with the given id exists.
func (s *Store[T]) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Add appends a record.
func (s *Store[T]) Add(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.id(item)
	if _, exists := s.index[key]; exists {
		return &InvariantError{Op: "add", ID: key, Err: ErrDuplicateID}
	}
	next := make([]T, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.index[key] = len(next)
	s.items = append(next, item)
	return nil
}

// Remove deletes the record with the given id and returns it.
func (s *Store[T]) Remove(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.index[id]
	if !ok {
		var zero T
		return zero, &InvariantError{Op: "remove", ID: id, Err: ErrUnknownID}
	}
	removed := s.items[idx]
	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	s.reindex()
	return removed, nil
}

// Replace swaps the record with the given id for the value returned by fn.
// fn runs under the store lock and sees the current record. Returning an error
// from fn aborts the replacement and is passed through unchanged.
func (s *Store[T]) Replace(id string, fn func(current T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	idx, ok := s.index[id]
	if !ok {
		return zero, &InvariantError{Op: "replace", ID: id, Err: ErrUnknownID}
	}
	current := s.items[idx]
	next, err := fn(current)
	if err != nil {
		return zero, err
	}
	if s.id(next) != id {
		return zero, &InvariantError{Op: "replace", ID: id, Err: ErrIDChanged}
	}
	if s.guard != nil {
		if err := s.guard(current, next); err != nil {
			return zero, &InvariantError{Op: "replace", ID: id, Err: err}
		}
	}
	items := make([]T, len(s.items))
	copy(items, s.items)
	items[idx] = next
	s.items = items
	return next, nil
}

func (s *Store[T]) reindex() {
	index := make(map[string]int, len(s.items))
	for i, item := range s.items {
		index[s.id(item)] = i
	}
	s.index = index
}
