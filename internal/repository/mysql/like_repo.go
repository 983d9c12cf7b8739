package mysql

import (
	"context"

	"Sierra_Connect/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventLikeRepository struct {
	DB *gorm.DB
}

// Add 幂等收藏，真正新增时同事务写 outbox
func (r *EventLikeRepository) Add(ctx context.Context, eventID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserLikedEvent{UserID: userID, EventID: eventID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "like", userID, eventID)
	})
	return changed, err
}

// Remove 幂等取消收藏
func (r *EventLikeRepository) Remove(ctx context.Context, eventID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&model.UserLikedEvent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "unlike", userID, eventID)
	})
	return changed, err
}

func (r *EventLikeRepository) Contains(eventID, userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserLikedEvent{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *EventLikeRepository) CountFor(eventID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserLikedEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// ListFor 该用户收藏的活动
func (r *EventLikeRepository) ListFor(userID string, offset, limit int) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Model(&model.Event{}).
		Joins("JOIN user_liked_event ul ON ul.event_id = events.id").
		Where("ul.user_id = ?", userID).
		Order("events.date DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}
