package recordstore

import (
	"sync"

	"github.com/cockroachdb/errors"
)

var ErrDuplicate = errors.New("duplicate record")

// Table is an in-memory, append-ordered record table. Records are cloned on the
// way in and out so callers never share memory with the stored rows.
//
// Ids handed out by NextID are count + 1, so tables that assign ids must not
// delete rows.
type Table[T any] struct {
	mu      sync.RWMutex
	name    string
	records []T
	clone   func(T) T
	key     func(T) string
	keys    map[string]struct{}
}

type Option[T any] func(*Table[T])

// WithClone sets the deep-copy function used on every read and write.
func WithClone[T any](fn func(T) T) Option[T] {
	return func(t *Table[T]) {
		t.clone = fn
	}
}

// WithUniqueKey rejects inserts whose key is already stored.
func WithUniqueKey[T any](fn func(T) string) Option[T] {
	return func(t *Table[T]) {
		t.key = fn
		t.keys = make(map[string]struct{})
	}
}

func New[T any](name string, opts ...Option[T]) *Table[T] {
	t := &Table[T]{name: name}
	for _, opt := range opts {
		opt(t)
	}
	if t.clone == nil {
		t.clone = func(v T) T { return v }
	}
	return t
}

func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) Insert(record T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.insertLocked(record)
}

// InsertWithID reserves the next id and inserts the record built for it
// under the same lock.
func (t *Table[T]) InsertWithID(build func(id int64) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := build(int64(len(t.records) + 1))
	if err := t.insertLocked(record); err != nil {
		var zero T
		return zero, err
	}
	return t.clone(record), nil
}

func (t *Table[T]) insertLocked(record T) error {
	if t.key != nil {
		k := t.key(record)
		if _, ok := t.keys[k]; ok {
			return errors.Mark(errors.Newf("%s: key %q already exists", t.name, k), ErrDuplicate)
		}
		t.keys[k] = struct{}{}
	}
	t.records = append(t.records, t.clone(record))
	return nil
}

func (t *Table[T]) Search(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0)
	for _, r := range t.records {
		if pred(r) {
			out = append(out, t.clone(r))
		}
	}
	return out
}

func (t *Table[T]) Get(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.records {
		if pred(r) {
			return t.clone(r), true
		}
	}
	var zero T
	return zero, false
}

// Update applies patch to every matching record and returns how many changed.
// Patches must not change the unique key.
func (t *Table[T]) Update(patch func(*T), pred func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	updated := 0
	for i := range t.records {
		if !pred(t.records[i]) {
			continue
		}
		next := t.clone(t.records[i])
		patch(&next)
		t.records[i] = next
		updated++
	}
	return updated
}

// Upsert patches the first matching record, or inserts build() when none match.
// It returns the stored record.
func (t *Table[T]) Upsert(pred func(T) bool, build func() T, patch func(*T)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.records {
		if !pred(t.records[i]) {
			continue
		}
		next := t.clone(t.records[i])
		patch(&next)
		t.records[i] = next
		return t.clone(next), nil
	}

	record := build()
	patch(&record)
	if err := t.insertLocked(record); err != nil {
		var zero T
		return zero, err
	}
	return t.clone(record), nil
}

func (t *Table[T]) Delete(pred func(T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.records[:0]
	deleted := 0
	for _, r := range t.records {
		if pred(r) {
			if t.key != nil {
				delete(t.keys, t.key(r))
			}
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	var zero T
	for i := len(kept); i < len(t.records); i++ {
		t.records[i] = zero
	}
	t.records = kept
	return deleted
}

func (t *Table[T]) All() []T {
	return t.Search(func(T) bool { return true })
}

func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.records)
}

func (t *Table[T]) NextID() int64 {
	return int64(t.Count() + 1)
}
