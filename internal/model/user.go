package model

import (
	"strings"
	"time"
)

type User struct {
	ID                     string `gorm:"primaryKey;size:36"`
	Email                  string `gorm:"uniqueIndex;size:128;not null"`
	Password               string `gorm:"size:255;not null"`
	Name                   string `gorm:"size:64;not null"`
	Avatar                 string `gorm:"size:255"`
	Bio                    string `gorm:"type:text"`
	Location               string `gorm:"size:128"`
	Interests              string `gorm:"size:512"` // 逗号分隔的兴趣标签
	NotificationsEnabled   bool   `gorm:"not null;default:true"`
	LocationSharingEnabled bool   `gorm:"not null;default:true"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// InterestList 把兴趣列拆回有序列表
func (u *User) InterestList() []string {
	if u.Interests == "" {
		return []string{}
	}
	return strings.Split(u.Interests, ",")
}
