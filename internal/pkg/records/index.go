package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Index maps a grouping key to an ordered, duplicate free list of primary
// keys holding at most capacity entries.
type Index struct {
	name      string
	property  string
	namespace string
	capacity  int
}

func NewIndex(kind, property string, capacity int) Index {
	return Index{
		name:      kind + "." + property,
		property:  property,
		namespace: IndexNamespace(kind, property),
		capacity:  capacity,
	}
}

func (i Index) Name() string     { return i.name }
func (i Index) Property() string { return i.property }
func (i Index) Capacity() int    { return i.capacity }

// Members returns the bucket in insertion order. A bucket that was never
// written is empty.
func (i Index) Members(ctx context.Context, tx Tx, bucket string) ([]string, error) {
	raw, err := tx.Get(ctx, i.namespace, bucket)
	if errors.Is(err, ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index %s[%s]: %w", i.name, bucket, err)
	}

	var members []Text
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, errs.NewVersionIsInvalidError(i.name, err)
	}
	return Strings(members), nil
}

func (i Index) Contains(ctx context.Context, tx Tx, bucket, member string) (bool, error) {
	members, err := i.Members(ctx, tx, bucket)
	if err != nil {
		return false, err
	}
	return slices.Contains(members, member), nil
}

// CheckCapacity fails with IndexIsFullError when the bucket cannot take one
// more entry.
func (i Index) CheckCapacity(ctx context.Context, tx Tx, bucket string) error {
	members, err := i.Members(ctx, tx, bucket)
	if err != nil {
		return err
	}
	if len(members) >= i.capacity {
		return errs.NewIndexIsFullError(i.name, bucket, i.capacity)
	}
	return nil
}

// Add appends member to the bucket. Adding a current member changes nothing,
// which keeps buckets free of duplicates.
func (i Index) Add(ctx context.Context, tx Tx, bucket, member string) error {
	members, err := i.Members(ctx, tx, bucket)
	if err != nil {
		return err
	}
	if slices.Contains(members, member) {
		return nil
	}
	if len(members) >= i.capacity {
		return errs.NewIndexIsFullError(i.name, bucket, i.capacity)
	}
	return i.write(ctx, tx, bucket, append(members, member))
}

// Remove drops every occurrence of member and keeps the order of the rest.
// Removing a non member is a no-op.
func (i Index) Remove(ctx context.Context, tx Tx, bucket, member string) error {
	members, err := i.Members(ctx, tx, bucket)
	if err != nil {
		return err
	}

	kept := members[:0]
	for _, m := range members {
		if m != member {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(members) {
		return nil
	}
	return i.write(ctx, tx, bucket, kept)
}

// Move takes member out of from and adds it to to.
func (i Index) Move(ctx context.Context, tx Tx, from, to, member string) error {
	if from == to {
		return nil
	}
	if err := i.Remove(ctx, tx, from, member); err != nil {
		return err
	}
	return i.Add(ctx, tx, to, member)
}

// Buckets lists the grouping keys that currently hold at least one member.
func (i Index) Buckets(ctx context.Context, tx Tx) ([]string, error) {
	return tx.Keys(ctx, i.namespace)
}

func (i Index) write(ctx context.Context, tx Tx, bucket string, members []string) error {
	if len(members) == 0 {
		if err := tx.Delete(ctx, i.namespace, bucket); err != nil {
			return fmt.Errorf("clear index %s[%s]: %w", i.name, bucket, err)
		}
		return nil
	}

	raw, err := json.Marshal(Texts(members))
	if err != nil {
		return fmt.Errorf("encode index %s[%s]: %w", i.name, bucket, err)
	}
	if err := tx.Put(ctx, i.namespace, bucket, raw); err != nil {
		return fmt.Errorf("write index %s[%s]: %w", i.name, bucket, err)
	}
	return nil
}
