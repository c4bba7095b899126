// Package memory provides an in-memory record store for demo and test use.
// Records are copied on every boundary crossing; callers never hold the
// canonical instance, and all mutation goes through Update under the store
// lock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/pipeline"
)

// Store holds records of one type keyed by store-assigned id.
type Store[T any] struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]T
	newRec func(id int64) T
	clone  func(T) T
}

// NewStore builds an empty store. newRec constructs a zero record for a
// fresh id; clone must return a copy sharing no mutable state with its
// argument (identity is fine for flat value types).
func NewStore[T any](newRec func(id int64) T, clone func(T) T) *Store[T] {
	return &Store[T]{
		items:  make(map[int64]T),
		newRec: newRec,
		clone:  clone,
	}
}

// Create persists a fresh record, applying init before it becomes visible.
func (s *Store[T]) Create(init func(*T)) pipeline.Task[T] {
	return func(ctx context.Context) (T, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.nextID++
		item := s.newRec(s.nextID)
		if init != nil {
			init(&item)
		}
		s.items[s.nextID] = s.clone(item)
		return item, nil
	}
}

// GetByID returns a copy of the record, or None when absent.
func (s *Store[T]) GetByID(id int64) pipeline.Task[option.Option[T]] {
	return func(ctx context.Context) (option.Option[T], error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		item, ok := s.items[id]
		if !ok {
			return option.None[T](), nil
		}
		return option.Some(s.clone(item)), nil
	}
}

// AllWhere returns copies of all matching records in id order. An empty
// result is a valid, empty slice.
func (s *Store[T]) AllWhere(pred func(T) bool) pipeline.Task[[]T] {
	return func(ctx context.Context) ([]T, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		matched := make([]T, 0)
		for _, id := range s.sortedIDs() {
			if item := s.items[id]; pred(item) {
				matched = append(matched, s.clone(item))
			}
		}
		return matched, nil
	}
}

// SingleWhere returns the matching record only when the predicate matches
// exactly one.
func (s *Store[T]) SingleWhere(pred func(T) bool) pipeline.Task[option.Option[T]] {
	return func(ctx context.Context) (option.Option[T], error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		found := option.None[T]()
		count := 0
		for _, item := range s.items {
			if pred(item) {
				count++
				if count > 1 {
					return option.None[T](), nil
				}
				found = option.Some(s.clone(item))
			}
		}
		if count != 1 {
			return option.None[T](), nil
		}
		return found, nil
	}
}

// Update applies fn to a copy of the record under the store lock and commits
// the copy only when fn returns nil. A failed mutation leaves the stored
// record untouched; a missing record is a fault.
func (s *Store[T]) Update(id int64, fn func(*T) error) pipeline.Task[T] {
	return func(ctx context.Context) (T, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		item, ok := s.items[id]
		if !ok {
			var zero T
			return zero, &NotFoundError{ID: id}
		}
		working := s.clone(item)
		if err := fn(&working); err != nil {
			var zero T
			return zero, err
		}
		s.items[id] = s.clone(working)
		return working, nil
	}
}

// insert seeds a record at an explicit id.
func (s *Store[T]) insert(id int64, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = s.clone(item)
	if id > s.nextID {
		s.nextID = id
	}
}

func (s *Store[T]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NotFoundError reports an Update against an id the store does not hold.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("memory: no record for id %d", e.ID)
}
