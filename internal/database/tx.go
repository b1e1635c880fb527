// Package database provides transaction management shared by repositories.
package database

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key for storing an open transaction.
type txKey struct{}

// TransactionManager runs units of work inside a database transaction and
// propagates the transaction through context so that every repository call
// in the unit, including audit writes, commits or rolls back together.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn within a transaction. An error from fn rolls
// the transaction back; nil commits it.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// FromContext returns the transaction stored in ctx, or the default DB when
// the caller is not inside a unit of work.
func FromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
