package models

import "time"

type Master struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:150;not null" json:"name"`
	Photo      string `gorm:"size:255" json:"photo,omitempty"`
	Phone      string `gorm:"size:20" json:"phone"`
	Address    string `gorm:"size:255" json:"address"`
	Experience int    `gorm:"default:0" json:"experience"` // years of experience
	IsActive   bool   `gorm:"default:true" json:"is_active"`
	ViewCount  int    `gorm:"default:0" json:"view_count"`

	Services []Service `gorm:"many2many:master_services" json:"services,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:MasterID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
