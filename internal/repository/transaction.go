package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTransactor implements the booking domain's Transactor on top of
// GORM. The transaction handle travels in the context so repositories
// join an ambient transaction transparently.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a GormTransactor.
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// RunInTransaction executes fn inside a SERIALIZABLE transaction. Any
// error from fn rolls everything back and is returned unchanged.
// SERIALIZABLE closes the check-then-act window between the overlap
// query and the write when two requests race on the same car.
func (t *GormTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// dbFrom returns the ambient transaction handle when inside
// RunInTransaction, the base connection otherwise.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
