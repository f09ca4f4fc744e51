package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Table is the primary store of one record kind. R is the persisted shape of
// the record and must round-trip through encoding/json; string fields that may
// carry arbitrary bytes are declared as Text.
type Table[R any] struct {
	kind      string
	namespace string
}

func NewTable[R any](kind string) Table[R] {
	return Table[R]{kind: kind, namespace: TypeNamespace(kind)}
}

func (t Table[R]) Kind() string {
	return t.kind
}

// Insert stores record under key. An existing key yields ObjectAlreadyExistsError.
func (t Table[R]) Insert(ctx context.Context, tx Tx, key string, record R) error {
	exists, err := t.Exists(ctx, tx, key)
	if err != nil {
		return err
	}
	if exists {
		return errs.NewObjectAlreadyExistsError(t.kind, key)
	}
	return t.put(ctx, tx, key, record)
}

// Get returns the record under key or ObjectNotFoundError.
func (t Table[R]) Get(ctx context.Context, tx Tx, key string) (R, error) {
	var record R

	raw, err := tx.Get(ctx, t.namespace, key)
	if errors.Is(err, ErrKeyNotFound) {
		return record, errs.NewObjectNotFoundError(t.kind, key)
	}
	if err != nil {
		return record, fmt.Errorf("get %s %q: %w", t.kind, key, err)
	}

	if err := json.Unmarshal(raw, &record); err != nil {
		return record, errs.NewVersionIsInvalidError(t.kind, err)
	}
	return record, nil
}

func (t Table[R]) Exists(ctx context.Context, tx Tx, key string) (bool, error) {
	_, err := tx.Get(ctx, t.namespace, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup %s %q: %w", t.kind, key, err)
	}
}

// Mutate loads the record, applies fn to it and stores the result. When fn
// fails nothing is written and its error is returned as is.
func (t Table[R]) Mutate(ctx context.Context, tx Tx, key string, fn func(*R) error) (R, error) {
	record, err := t.Get(ctx, tx, key)
	if err != nil {
		return record, err
	}
	if err := fn(&record); err != nil {
		var zero R
		return zero, err
	}
	if err := t.put(ctx, tx, key, record); err != nil {
		var zero R
		return zero, err
	}
	return record, nil
}

// Replace overwrites an existing record. A missing key yields ObjectNotFoundError.
func (t Table[R]) Replace(ctx context.Context, tx Tx, key string, record R) error {
	_, err := t.Mutate(ctx, tx, key, func(r *R) error {
		*r = record
		return nil
	})
	return err
}

func (t Table[R]) Remove(ctx context.Context, tx Tx, key string) error {
	exists, err := t.Exists(ctx, tx, key)
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError(t.kind, key)
	}
	if err := tx.Delete(ctx, t.namespace, key); err != nil {
		return fmt.Errorf("delete %s %q: %w", t.kind, key, err)
	}
	return nil
}

// Keys lists every primary key of the kind in ascending order.
func (t Table[R]) Keys(ctx context.Context, tx Tx) ([]string, error) {
	return tx.Keys(ctx, t.namespace)
}

func (t Table[R]) put(ctx context.Context, tx Tx, key string, record R) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s %q: %w", t.kind, key, err)
	}
	if err := tx.Put(ctx, t.namespace, key, raw); err != nil {
		return fmt.Errorf("put %s %q: %w", t.kind, key, err)
	}
	return nil
}
