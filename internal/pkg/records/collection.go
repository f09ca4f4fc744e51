package records

import (
	"context"
	"fmt"
	"slices"

	"github.com/lao-sha/fissionmall/internal/pkg/errs"
)

// Family binds an Index to the record field it groups by.
type Family[R any] struct {
	Index Index
	// Bucket returns the grouping key of a record. Records with an empty
	// grouping key are not indexed by the family.
	Bucket func(R) string
	// Exclusive families hold every record in exactly one bucket (status).
	Exclusive bool
	// Open families also receive keys outside the record lifecycle, so a
	// bucket may hold keys whose record groups elsewhere.
	Open bool
}

// Collection keeps a Table and its index families consistent. Every write
// checks the capacity of each bucket it will append to before touching the
// primary table.
type Collection[R any] struct {
	Table    Table[R]
	Key      func(R) string
	Families []Family[R]
}

// Create inserts record and adds its key to the bucket of every family.
func (c Collection[R]) Create(ctx context.Context, tx Tx, record R) error {
	key := c.Key(record)

	exists, err := c.Table.Exists(ctx, tx, key)
	if err != nil {
		return err
	}
	if !exists {
		for _, f := range c.Families {
			if err := c.checkRoom(ctx, tx, f, f.Bucket(record), key); err != nil {
				return err
			}
		}
	}

	if err := c.Table.Insert(ctx, tx, key, record); err != nil {
		return err
	}
	for _, f := range c.Families {
		if bucket := f.Bucket(record); bucket != "" {
			if err := f.Index.Add(ctx, tx, bucket, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Save replaces a stored record and moves its key between buckets whose
// grouping key changed.
func (c Collection[R]) Save(ctx context.Context, tx Tx, record R) error {
	key := c.Key(record)

	previous, err := c.Table.Get(ctx, tx, key)
	if err != nil {
		return err
	}

	type move struct {
		index    Index
		from, to string
	}
	var moves []move
	for _, f := range c.Families {
		from, to := f.Bucket(previous), f.Bucket(record)
		if from == to {
			continue
		}
		if err := c.checkRoom(ctx, tx, f, to, key); err != nil {
			return err
		}
		moves = append(moves, move{index: f.Index, from: from, to: to})
	}

	if err := c.Table.Replace(ctx, tx, key, record); err != nil {
		return err
	}
	for _, m := range moves {
		if m.from != "" {
			if err := m.index.Remove(ctx, tx, m.from, key); err != nil {
				return err
			}
		}
		if m.to != "" {
			if err := m.index.Add(ctx, tx, m.to, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes the key from every bucket of the stored record, then the
// record itself, and returns what was removed.
func (c Collection[R]) Delete(ctx context.Context, tx Tx, key string) (R, error) {
	record, err := c.Table.Get(ctx, tx, key)
	if err != nil {
		return record, err
	}
	for _, f := range c.Families {
		buckets := []string{f.Bucket(record)}
		if f.Open {
			// the key may have been added to any bucket
			if buckets, err = f.Index.Buckets(ctx, tx); err != nil {
				return record, err
			}
		}
		for _, bucket := range buckets {
			if bucket == "" {
				continue
			}
			if err := f.Index.Remove(ctx, tx, bucket, key); err != nil {
				return record, err
			}
		}
	}
	if err := c.Table.Remove(ctx, tx, key); err != nil {
		return record, err
	}
	return record, nil
}

func (c Collection[R]) Get(ctx context.Context, tx Tx, key string) (R, error) {
	return c.Table.Get(ctx, tx, key)
}

func (c Collection[R]) Exists(ctx context.Context, tx Tx, key string) (bool, error) {
	return c.Table.Exists(ctx, tx, key)
}

// Members lists one bucket of the family indexing property.
func (c Collection[R]) Members(ctx context.Context, tx Tx, property, bucket string) ([]string, error) {
	for _, f := range c.Families {
		if f.Index.Property() == property {
			return f.Index.Members(ctx, tx, bucket)
		}
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("index",
		fmt.Errorf("%s has no %q index", c.Table.Kind(), property))
}

// Snapshot reads the whole collection for an index audit.
func (c Collection[R]) Snapshot(ctx context.Context, tx Tx) (Snapshot, error) {
	keys, err := c.Table.Keys(ctx, tx)
	if err != nil {
		return Snapshot{}, err
	}
	loaded := make(map[string]R, len(keys))
	for _, key := range keys {
		record, err := c.Table.Get(ctx, tx, key)
		if err != nil {
			return Snapshot{}, err
		}
		loaded[key] = record
	}

	snapshot := Snapshot{Kind: c.Table.Kind(), Keys: keys}
	for _, f := range c.Families {
		fs := FamilySnapshot{
			Name:      f.Index.Name(),
			Exclusive: f.Exclusive,
			Open:      f.Open,
			Buckets:   make(map[string][]string),
			Expected:  make(map[string]string, len(loaded)),
		}
		buckets, err := f.Index.Buckets(ctx, tx)
		if err != nil {
			return Snapshot{}, err
		}
		for _, bucket := range buckets {
			members, err := f.Index.Members(ctx, tx, bucket)
			if err != nil {
				return Snapshot{}, err
			}
			fs.Buckets[bucket] = members
		}
		for key, record := range loaded {
			if bucket := f.Bucket(record); bucket != "" {
				fs.Expected[key] = bucket
			}
		}
		snapshot.Families = append(snapshot.Families, fs)
	}
	return snapshot, nil
}

// checkRoom fails when key would be appended to a full bucket.
func (c Collection[R]) checkRoom(ctx context.Context, tx Tx, f Family[R], bucket, key string) error {
	if bucket == "" {
		return nil
	}
	members, err := f.Index.Members(ctx, tx, bucket)
	if err != nil {
		return err
	}
	if slices.Contains(members, key) {
		return nil
	}
	return f.Index.CheckCapacity(ctx, tx, bucket)
}

// FamilySnapshot is the content of one index family at one point in time.
type FamilySnapshot struct {
	Name      string
	Exclusive bool
	Open      bool
	Buckets   map[string][]string
	// Expected maps each record key to the bucket its fields place it in.
	Expected map[string]string
}

// Snapshot is a collection read in one transaction.
type Snapshot struct {
	Kind     string
	Keys     []string
	Families []FamilySnapshot
}
