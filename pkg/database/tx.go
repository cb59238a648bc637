package database

import (
	"context"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a transaction bound to ctx. The transaction
// is committed when fn returns nil and rolled back on error or panic.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
