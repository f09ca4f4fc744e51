// Package memory provides an in-process transactional backend and a logical
// clock. It is the default backend of the service and the one tests run on.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/lao-sha/fissionmall/internal/pkg/records"
)

var ErrTxClosed = errors.New("memory: transaction is closed")

var _ records.Backend = (*Store)(nil)

// Store keeps namespaces in maps. A transaction holds the store lock from
// Begin until Commit or Rollback, so writers never interleave.
type Store struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string]map[string][]byte)}
}

func (s *Store) Begin(ctx context.Context) (records.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &transaction{
		store:  s,
		staged: make(map[string]map[string]*[]byte),
	}, nil
}

// transaction stages writes. A nil entry in staged marks a delete.
type transaction struct {
	store  *Store
	staged map[string]map[string]*[]byte
	closed bool
}

func (t *transaction) Get(_ context.Context, namespace, key string) ([]byte, error) {
	if t.closed {
		return nil, ErrTxClosed
	}
	if entry, ok := t.staged[namespace][key]; ok {
		if entry == nil {
			return nil, records.ErrKeyNotFound
		}
		return slices.Clone(*entry), nil
	}
	value, ok := t.store.data[namespace][key]
	if !ok {
		return nil, records.ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

func (t *transaction) Put(_ context.Context, namespace, key string, value []byte) error {
	if t.closed {
		return ErrTxClosed
	}
	v := slices.Clone(value)
	t.stage(namespace)[key] = &v
	return nil
}

func (t *transaction) Delete(_ context.Context, namespace, key string) error {
	if t.closed {
		return ErrTxClosed
	}
	t.stage(namespace)[key] = nil
	return nil
}

func (t *transaction) Keys(_ context.Context, namespace string) ([]string, error) {
	if t.closed {
		return nil, ErrTxClosed
	}
	keys := make(map[string]struct{})
	for k := range t.store.data[namespace] {
		keys[k] = struct{}{}
	}
	for k, entry := range t.staged[namespace] {
		if entry == nil {
			delete(keys, k)
		} else {
			keys[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(keys)), nil
}

func (t *transaction) Commit(_ context.Context) error {
	if t.closed {
		return ErrTxClosed
	}
	for namespace, entries := range t.staged {
		target, ok := t.store.data[namespace]
		if !ok {
			target = make(map[string][]byte)
			t.store.data[namespace] = target
		}
		for key, entry := range entries {
			if entry == nil {
				delete(target, key)
			} else {
				target[key] = *entry
			}
		}
		if len(target) == 0 {
			delete(t.store.data, namespace)
		}
	}
	t.finish()
	return nil
}

func (t *transaction) Rollback(_ context.Context) error {
	if t.closed {
		return ErrTxClosed
	}
	t.finish()
	return nil
}

func (t *transaction) stage(namespace string) map[string]*[]byte {
	entries, ok := t.staged[namespace]
	if !ok {
		entries = make(map[string]*[]byte)
		t.staged[namespace] = entries
	}
	return entries
}

func (t *transaction) finish() {
	t.closed = true
	t.staged = nil
	t.store.mu.Unlock()
}
