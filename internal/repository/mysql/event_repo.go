package mysql

import (
	"Sierra_Connect/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

// Create 建活动。组织者不自动参加，和社区创建不同。
func (r *EventRepository) Create(e *model.Event) (*model.Event, error) {
	err := r.DB.Create(e).Error
	return e, err
}

func (r *EventRepository) FindByID(id string) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, "id = ?", id).Error
	return &event, err
}

// List 按分类/地点子串/价格过滤。date 是字符串列，倒序即按字典序。
func (r *EventRepository) List(offset, limit int, category, location, priceFilter string) ([]model.Event, error) {
	q := r.DB.Model(&model.Event{})

	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	if location != "" {
		q = q.Where("location LIKE ?", "%"+location+"%")
	}
	switch priceFilter {
	case "free":
		q = q.Where("price = 0")
	case "paid":
		q = q.Where("price > 0")
	}

	var list []model.Event
	err := q.Order("date DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *EventRepository) ListByOrganizer(userID string, offset, limit int) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Where("organizer_id = ?", userID).
		Order("date DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// UpdateFields 只更新给定的列，权限判断在服务层
func (r *EventRepository) UpdateFields(id string, fields map[string]any) error {
	return r.DB.Model(&model.Event{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteByID 硬删除活动，同一事务内清掉参加边和收藏边
func (r *EventRepository) DeleteByID(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.UserEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.UserLikedEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, "id = ?", id).Error
	})
}
