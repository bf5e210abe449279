package database

import (
	"ledgerly/internal/transactions"
	"ledgerly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&users.User{},
		&transactions.Transaction{},
	)
	if err != nil {
		return err
	}

	return MigrateConstraints(db)
}
