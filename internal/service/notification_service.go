package service

import (
	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/repository/mysql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	repo  *mysql.NotificationRepository
	users *mysql.UserRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		repo:  &mysql.NotificationRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
	}
}

// Create 纯追加，不去重：相同内容每次都插入新行
func (s *NotificationService) Create(userID, message, notificationType, senderID, referenceID string) (*model.Notification, error) {
	if message == "" || notificationType == "" {
		return nil, ErrValidation
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, ErrNotFound
	}

	n := &model.Notification{
		ID:               uuid.NewString(),
		UserID:           userID,
		SenderID:         senderID,
		Message:          message,
		NotificationType: notificationType,
		ReferenceID:      referenceID,
		Read:             false,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) ListFor(userID string, skip, limit int, unreadOnly bool) ([]model.Notification, error) {
	skip, limit = normalizePage(skip, limit)
	return s.repo.ListForUser(userID, skip, limit, unreadOnly)
}

// MarkRead 仅属主可标记，幂等。不存在和不属于都返回 ErrNotFound。
func (s *NotificationService) MarkRead(id, userID string) error {
	n, err := s.repo.FindByID(id)
	if err != nil || n.UserID != userID {
		return ErrNotFound
	}
	return s.repo.MarkRead(id)
}

// MarkAllRead 批量置已读，返回影响行数
func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(id, userID string) error {
	n, err := s.repo.FindByID(id)
	if err != nil || n.UserID != userID {
		return ErrNotFound
	}
	return s.repo.DeleteByID(id)
}
