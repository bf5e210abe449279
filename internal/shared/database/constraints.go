package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes that AutoMigrate does not cover.
func MigrateConstraints(db *gorm.DB) error {
	// Composite index for the transaction listing query, which always
	// filters by owner and orders by recency
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_user_created
		ON transactions (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
