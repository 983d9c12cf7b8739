package mysql

import (
	"context"

	"Sierra_Connect/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventAttendeeRepository struct {
	DB *gorm.DB
}

// Add 幂等参加：边已存在不报错。真正新增时同事务写 outbox。
func (r *EventAttendeeRepository) Add(ctx context.Context, eventID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserEvent{UserID: userID, EventID: eventID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "attend", userID, eventID)
	})
	return changed, err
}

// Remove 幂等取消参加。组织者也可以取消，活动侧没有创建者限制。
func (r *EventAttendeeRepository) Remove(ctx context.Context, eventID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&model.UserEvent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "unattend", userID, eventID)
	})
	return changed, err
}

func (r *EventAttendeeRepository) Contains(eventID, userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserEvent{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EventAttendeeRepository) CountFor(eventID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// ListFor 该用户参加的活动
func (r *EventAttendeeRepository) ListFor(userID string, offset, limit int) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Model(&model.Event{}).
		Joins("JOIN user_event ue ON ue.event_id = events.id").
		Where("ue.user_id = ?", userID).
		Order("events.date DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}
