package models

import "time"

type Review struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	ClientName string `gorm:"size:100" json:"client_name"`
	Rating     int    `gorm:"not null" json:"rating"` // 1..5

	// A review cannot outlive its master; deletion cascades in
	// MasterService.Delete.
	MasterID uint    `gorm:"index;not null" json:"master_id"`
	Master   *Master `json:"master,omitempty"`

	Photo       string `gorm:"size:255" json:"photo,omitempty"`
	IsPublished bool   `gorm:"default:false" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
}
