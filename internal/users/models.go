package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential record backing authentication. Email is stored
// lower-cased and unique; the password digest never leaves the service.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Projection is the identity view attached to authenticated requests and
// returned by profile lookups. It deliberately omits the password digest.
type Projection struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Project strips the credential fields from a full record.
func (u *User) Project() Projection {
	return Projection{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
