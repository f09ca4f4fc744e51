package records

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Tx.Get for an absent key.
var ErrKeyNotFound = errors.New("key not found")

// Tx is a read-write view of the backend bound to one transaction.
type Tx interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	// Keys lists the keys of a namespace in ascending byte order.
	Keys(ctx context.Context, namespace string) ([]string, error)
}

// Transaction is a Tx that can be finished. Commit and Rollback both close it.
type Transaction interface {
	Tx
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Backend opens transactions. Implementations serialize writers.
type Backend interface {
	Begin(ctx context.Context) (Transaction, error)
}

func TypeNamespace(kind string) string {
	return "Type." + kind
}

func IndexNamespace(kind, property string) string {
	return "Index." + kind + "." + property
}
