package models

import "time"

// Notification delivery states.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	// Dead means the retry budget is exhausted; the row stays for staff
	// inspection.
	NotificationDead = "dead"
)

// Notification kinds.
const (
	NotificationKindOrder  = "order"
	NotificationKindReview = "review"
)

// NotificationLog is the dead-letter record for the notification gateway.
// Every dispatch writes a row; the retry sweeper picks up failed ones.
type NotificationLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Kind      string     `gorm:"size:20;not null" json:"kind"`
	Channel   string     `gorm:"size:20" json:"channel"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Status    string     `gorm:"size:20;not null;default:pending" json:"status"`
	Attempts  int        `gorm:"default:0" json:"attempts"`
	LastError string     `gorm:"type:text" json:"last_error,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
