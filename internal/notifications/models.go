package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeWelcome NotificationType = "WELCOME"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusSending NotificationStatus = "SENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// AccountNotification is the message shape carried through Kafka for
// account-lifecycle emails.
type AccountNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

// NewWelcomeNotification builds the notification published when a new
// account is registered.
func NewWelcomeNotification(userID uuid.UUID, email, name string) *AccountNotification {
	now := time.Now()
	return &AccountNotification{
		ID:             uuid.New(),
		Type:           NotificationTypeWelcome,
		RecipientID:    userID,
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        "Welcome to Ledgerly!",
		TemplateData: map[string]interface{}{
			"name": name,
		},
		Status:     NotificationStatusPending,
		MaxRetries: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// GetPartitionKey keys messages by recipient so a user's notifications
// stay ordered within a partition.
func (an *AccountNotification) GetPartitionKey() string {
	return an.RecipientID.String()
}

func (an *AccountNotification) ToJSON() ([]byte, error) {
	return json.Marshal(an)
}

func (an *AccountNotification) MarkSent() {
	now := time.Now()
	an.Status = NotificationStatusSent
	an.SentAt = &now
	an.UpdatedAt = now
}

func (an *AccountNotification) MarkFailed(err error) {
	an.Status = NotificationStatusFailed
	an.UpdatedAt = time.Now()

	errorStr := err.Error()
	an.LastError = &errorStr
}
