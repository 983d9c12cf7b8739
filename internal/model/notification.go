package model

import "time"

type Notification struct {
	ID               string `gorm:"primaryKey;size:36"`
	UserID           string `gorm:"size:36;not null;index"`
	SenderID         string `gorm:"size:36"`
	Message          string `gorm:"type:text;not null"`
	NotificationType string `gorm:"size:32;not null"` // event / community / system
	ReferenceID      string `gorm:"size:36"`
	Read             bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
}
