package model

import "time"

type Event struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Title       string  `gorm:"size:128;not null"`
	Description string  `gorm:"type:text;not null"`
	Image       string  `gorm:"size:255"`
	Date        string  `gorm:"size:32;not null"` // ISO 日期字符串，不做解析
	Time        string  `gorm:"size:32;not null"`
	Location    string  `gorm:"size:128;not null"`
	Category    string  `gorm:"size:32;not null;index"`
	Price       float64 `gorm:"not null;default:0"`
	CommunityID string  `gorm:"size:36;index"`
	OrganizerID string  `gorm:"size:36;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserEvent 活动参加关系表
type UserEvent struct {
	UserID  string `gorm:"primaryKey;size:36"`
	EventID string `gorm:"primaryKey;size:36"`
}

func (UserEvent) TableName() string { return "user_event" }

// UserLikedEvent 活动收藏关系表
type UserLikedEvent struct {
	UserID  string `gorm:"primaryKey;size:36"`
	EventID string `gorm:"primaryKey;size:36"`
}

func (UserLikedEvent) TableName() string { return "user_liked_event" }
