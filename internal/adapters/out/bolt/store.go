// Package bolt is a file backed transactional backend built on bbolt. Each
// namespace is a top level bucket created on first write.
package bolt

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"go.etcd.io/bbolt"
)

var _ records.Backend = (*Store)(nil)

type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	slog.Debug("bolt.Open - open bolt store", "path", path)

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Begin opens a writable bbolt transaction. bbolt admits one writer at a time,
// so concurrent callers queue here.
func (s *Store) Begin(ctx context.Context) (records.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx, err := s.db.Begin(true)
	if err != nil {
		return nil, fmt.Errorf("failed to begin bolt tx: %w", err)
	}
	return &transaction{tx: tx}, nil
}

type transaction struct {
	tx *bbolt.Tx
}

func (t *transaction) Get(_ context.Context, namespace, key string) ([]byte, error) {
	bucket := t.tx.Bucket([]byte(namespace))
	if bucket == nil {
		return nil, records.ErrKeyNotFound
	}
	value := bucket.Get([]byte(key))
	if value == nil {
		return nil, records.ErrKeyNotFound
	}
	// bbolt memory is only valid for the life of the transaction.
	return bytes.Clone(value), nil
}

func (t *transaction) Put(_ context.Context, namespace, key string, value []byte) error {
	bucket, err := t.tx.CreateBucketIfNotExists([]byte(namespace))
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", namespace, err)
	}
	return bucket.Put([]byte(key), value)
}

func (t *transaction) Delete(_ context.Context, namespace, key string) error {
	bucket := t.tx.Bucket([]byte(namespace))
	if bucket == nil {
		return nil
	}
	return bucket.Delete([]byte(key))
}

func (t *transaction) Keys(_ context.Context, namespace string) ([]string, error) {
	keys := []string{}
	bucket := t.tx.Bucket([]byte(namespace))
	if bucket == nil {
		return keys, nil
	}
	err := bucket.ForEach(func(k, _ []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	return keys, err
}

func (t *transaction) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *transaction) Rollback(_ context.Context) error {
	return t.tx.Rollback()
}
