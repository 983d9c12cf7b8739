package mysql

import (
	"Sierra_Connect/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) FindByID(id string) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.First(&n, "id = ?", id).Error
	return &n, err
}

// ListForUser 某用户的通知，创建时间倒序
func (r *NotificationRepository) ListForUser(userID string, offset, limit int, unreadOnly bool) ([]model.Notification, error) {
	q := r.DB.Where("user_id = ?", userID)
	if unreadOnly {
		// read 是 MySQL 保留字
		q = q.Where("`read` = ?", false)
	}
	var list []model.Notification
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkRead(id string) error {
	return r.DB.Model(&model.Notification{}).Where("id = ?", id).
		Update("read", true).Error
}

// MarkAllRead 批量置已读，返回影响行数
func (r *NotificationRepository) MarkAllRead(userID string) (int64, error) {
	res := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) DeleteByID(id string) error {
	return r.DB.Delete(&model.Notification{}, "id = ?", id).Error
}
