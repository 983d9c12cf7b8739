package model

import "time"

// ActivityOutbox 关系变更事件监控表
type ActivityOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // join / leave / attend / unattend / like / unlike
	UserID    string `gorm:"size:36;not null"`
	SubjectID string `gorm:"size:36;not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ActivityOutbox) TableName() string { return "activity_outbox" }
