package transactions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is a ledger entry owned by a single user. Amount is stored in
// minor units (cents) to avoid floating point drift.
type Transaction struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	AmountCents int64     `json:"amount_cents" gorm:"not null"`
	Currency    string    `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
