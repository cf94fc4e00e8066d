package models

import "time"

// Order statuses. Labels are the human-readable values staff see in the
// management UI and may search against.
const (
	StatusNotApproved = "not_approved"
	StatusModerated   = "moderated"
	StatusSpam        = "spam"
	StatusApproved    = "approved"
	StatusInAwaiting  = "in_awaiting"
	StatusCompleted   = "completed"
	StatusCanceled    = "canceled"
)

type StatusChoice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var StatusChoices = []StatusChoice{
	{StatusNotApproved, "Не подтвержден"},
	{StatusModerated, "На модерации"},
	{StatusSpam, "Спам"},
	{StatusApproved, "Подтвержден"},
	{StatusInAwaiting, "В ожидании"},
	{StatusCompleted, "Завершен"},
	{StatusCanceled, "Отменен"},
}

func ValidStatus(code string) bool {
	for _, c := range StatusChoices {
		if c.Code == code {
			return true
		}
	}
	return false
}

func StatusLabel(code string) string {
	for _, c := range StatusChoices {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}

type Order struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ClientName string `gorm:"size:100;not null" json:"client_name"`
	Phone      string `gorm:"size:20;not null" json:"phone"`
	Comment    string `gorm:"type:text" json:"comment"`
	Status     string `gorm:"size:50;not null;default:not_approved" json:"status"`

	// Nullable on purpose: orders must survive master deletion.
	MasterID *uint   `gorm:"index" json:"master_id,omitempty"`
	Master   *Master `json:"master,omitempty"`

	Services []Service `gorm:"many2many:order_services" json:"services,omitempty"`

	AppointmentAt *time.Time `json:"appointment_at,omitempty"`

	// Set when the first-attach notification has been dispatched so that
	// later service edits never trigger a second one.
	NotificationSent bool `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) StatusLabel() string {
	return StatusLabel(o.Status)
}
