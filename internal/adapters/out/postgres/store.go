// Package postgres stores namespaced key-value entries in PostgreSQL through
// GORM. All namespaces share the kv_entries table; each transaction takes a
// transaction scoped advisory lock so that writers are serialized the same way
// they are on the embedded backends.
//
// Usage:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	store := NewStore(db)
//	if err := store.Migrate(ctx); err != nil {
//	    return err
//	}
//	tx, err := store.Begin(ctx)
package postgres

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// writerLockID is the pg_advisory_xact_lock key shared by every writer.
const writerLockID = 0x66697373

var _ records.Backend = (*Store)(nil)

// EntryDTO is one key-value pair of one namespace. EntryKey holds the key hex
// encoded so that keys which are not valid UTF-8 fit a text column; lower case
// hex keeps the byte order under the C collation.
type EntryDTO struct {
	Namespace string `gorm:"primaryKey;size:192"`
	EntryKey  string `gorm:"primaryKey;size:512"`
	Value     []byte `gorm:"type:bytea;not null"`
}

// TableName overrides GORM's default naming convention.
func (EntryDTO) TableName() string {
	return "kv_entries"
}

// Store opens GORM transactions against db.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the kv_entries table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&EntryDTO{})
}

func (s *Store) Begin(ctx context.Context) (records.Transaction, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", writerLockID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to acquire writer lock: %w", err)
	}
	return &transaction{tx: tx}, nil
}

// transaction wraps one open GORM transaction. tx is nil once finished.
type transaction struct {
	tx *gorm.DB
}

func (t *transaction) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if t.tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}

	var dto EntryDTO
	err := t.tx.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", namespace, hex.EncodeToString([]byte(key))).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, records.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return dto.Value, nil
}

func (t *transaction) Put(ctx context.Context, namespace, key string, value []byte) error {
	if t.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	dto := EntryDTO{Namespace: namespace, EntryKey: hex.EncodeToString([]byte(key)), Value: value}
	return t.tx.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

func (t *transaction) Delete(ctx context.Context, namespace, key string) error {
	if t.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	return t.tx.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", namespace, hex.EncodeToString([]byte(key))).
		Delete(&EntryDTO{}).Error
}

// Keys orders by the C collation so that the result matches byte order.
func (t *transaction) Keys(ctx context.Context, namespace string) ([]string, error) {
	if t.tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}

	var encoded []string
	err := t.tx.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("namespace = ?", namespace).
		Order(`entry_key COLLATE "C"`).
		Pluck("entry_key", &encoded).Error
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(encoded))
	for _, e := range encoded {
		raw, err := hex.DecodeString(e)
		if err != nil {
			return nil, fmt.Errorf("decode key %q of %s: %w", e, namespace, err)
		}
		keys = append(keys, string(raw))
	}
	return keys, nil
}

func (t *transaction) Commit(_ context.Context) error {
	if t.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := t.tx.Commit().Error
	t.tx = nil
	return err
}

func (t *transaction) Rollback(_ context.Context) error {
	if t.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := t.tx.Rollback().Error
	t.tx = nil
	return err
}
