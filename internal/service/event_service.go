package service

import (
	"context"

	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/repository/mysql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventService struct {
	repo      *mysql.EventRepository
	attendees *mysql.EventAttendeeRepository
	likes     *mysql.EventLikeRepository
	users     *mysql.UserRepository
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		repo:      &mysql.EventRepository{DB: db},
		attendees: &mysql.EventAttendeeRepository{DB: db},
		likes:     &mysql.EventLikeRepository{DB: db},
		users:     &mysql.UserRepository{DB: db},
	}
}

type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Category    string
	Price       float64
	Image       string
	CommunityID string
}

type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	Category    *string
	Price       *float64
	Image       *string
	CommunityID *string
}

func (s *EventService) Get(id string) (*model.Event, error) {
	event, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return event, nil
}

// List priceFilter 取 free / paid，其余值不过滤
func (s *EventService) List(skip, limit int, category, location, priceFilter string) ([]model.Event, error) {
	skip, limit = normalizePage(skip, limit)
	return s.repo.List(skip, limit, category, location, priceFilter)
}

func (s *EventService) ListByOrganizer(userID string, skip, limit int) ([]model.Event, error) {
	skip, limit = normalizePage(skip, limit)
	return s.repo.ListByOrganizer(userID, skip, limit)
}

func (s *EventService) ListAttending(userID string, skip, limit int) ([]model.Event, error) {
	skip, limit = normalizePage(skip, limit)
	return s.attendees.ListFor(userID, skip, limit)
}

func (s *EventService) ListLiked(userID string, skip, limit int) ([]model.Event, error) {
	skip, limit = normalizePage(skip, limit)
	return s.likes.ListFor(userID, skip, limit)
}

// Create 组织者不会自动成为参加者
func (s *EventService) Create(organizerID string, in EventInput) (*model.Event, error) {
	if in.Title == "" || in.Description == "" || in.Date == "" ||
		in.Time == "" || in.Location == "" || in.Category == "" {
		return nil, ErrValidation
	}
	if in.Price < 0 {
		return nil, ErrValidation
	}

	event := &model.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Category:    in.Category,
		Price:       in.Price,
		Image:       in.Image,
		CommunityID: in.CommunityID,
		OrganizerID: organizerID,
	}
	return s.repo.Create(event)
}

// Update 仅组织者可改，不存在和非组织者都返回 ErrNotFound。
// organizer_id 建后不可变。
func (s *EventService) Update(id string, in EventUpdate, userID string) (*model.Event, error) {
	event, err := s.repo.FindByID(id)
	if err != nil || event.OrganizerID != userID {
		return nil, ErrNotFound
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.Time != nil {
		fields["time"] = *in.Time
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrValidation
		}
		fields["price"] = *in.Price
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.CommunityID != nil {
		fields["community_id"] = *in.CommunityID
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(id)
}

func (s *EventService) Delete(id, userID string) error {
	event, err := s.repo.FindByID(id)
	if err != nil || event.OrganizerID != userID {
		return ErrNotFound
	}
	return s.repo.DeleteByID(id)
}

func (s *EventService) Attend(ctx context.Context, eventID, userID string) error {
	if err := s.checkEdge(eventID, userID); err != nil {
		return err
	}
	_, err := s.attendees.Add(ctx, eventID, userID)
	return err
}

// Unattend 组织者也可以取消参加，和社区创建者不同
func (s *EventService) Unattend(ctx context.Context, eventID, userID string) error {
	if err := s.checkEdge(eventID, userID); err != nil {
		return err
	}
	_, err := s.attendees.Remove(ctx, eventID, userID)
	return err
}

func (s *EventService) Like(ctx context.Context, eventID, userID string) error {
	if err := s.checkEdge(eventID, userID); err != nil {
		return err
	}
	_, err := s.likes.Add(ctx, eventID, userID)
	return err
}

func (s *EventService) Unlike(ctx context.Context, eventID, userID string) error {
	if err := s.checkEdge(eventID, userID); err != nil {
		return err
	}
	_, err := s.likes.Remove(ctx, eventID, userID)
	return err
}

func (s *EventService) IsAttending(eventID, userID string) (bool, error) {
	return s.attendees.Contains(eventID, userID)
}

func (s *EventService) IsLiked(eventID, userID string) (bool, error) {
	return s.likes.Contains(eventID, userID)
}

func (s *EventService) AttendeeCount(eventID string) (int64, error) {
	return s.attendees.CountFor(eventID)
}

func (s *EventService) LikeCount(eventID string) (int64, error) {
	return s.likes.CountFor(eventID)
}

// checkEdge 边操作前置检查：活动和用户都要存在
func (s *EventService) checkEdge(eventID, userID string) error {
	if _, err := s.repo.FindByID(eventID); err != nil {
		return ErrNotFound
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return ErrNotFound
	}
	return nil
}
