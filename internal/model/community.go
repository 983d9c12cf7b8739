package model

import "time"

type Community struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:64;not null"`
	Description string `gorm:"type:text;not null"`
	Image       string `gorm:"size:255"`
	Category    string `gorm:"size:32;not null;index"`
	Location    string `gorm:"size:128"`
	Guidelines  string `gorm:"type:text"`
	CreatorID   string `gorm:"size:36;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserCommunity 社区成员关系表，(user_id, community_id) 联合主键
type UserCommunity struct {
	UserID      string `gorm:"primaryKey;size:36"`
	CommunityID string `gorm:"primaryKey;size:36"`
}

func (UserCommunity) TableName() string { return "user_community" }
