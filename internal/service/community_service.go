package service

import (
	"context"

	"Sierra_Connect/internal/model"
	"Sierra_Connect/internal/repository/mysql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommunityService struct {
	repo    *mysql.CommunityRepository
	members *mysql.CommunityMemberRepository
	users   *mysql.UserRepository
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{
		repo:    &mysql.CommunityRepository{DB: db},
		members: &mysql.CommunityMemberRepository{DB: db},
		users:   &mysql.UserRepository{DB: db},
	}
}

type CommunityInput struct {
	Name        string
	Description string
	Category    string
	Location    string
	Image       string
	Guidelines  string
}

type CommunityUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Location    *string
	Image       *string
	Guidelines  *string
}

func (s *CommunityService) Get(id string) (*model.Community, error) {
	community, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return community, nil
}

// List category为"all"或空表示不过滤；membershipFilter需要配合userID，
// userID为空或用户不存在时忽略该过滤。
func (s *CommunityService) List(skip, limit int, category, membershipFilter, userID string) ([]model.Community, error) {
	skip, limit = normalizePage(skip, limit)

	if membershipFilter != "" && userID != "" {
		if _, err := s.users.FindByID(userID); err != nil {
			userID = ""
		}
	}
	return s.repo.List(skip, limit, category, membershipFilter, userID)
}

func (s *CommunityService) ListByCreator(userID string, skip, limit int) ([]model.Community, error) {
	skip, limit = normalizePage(skip, limit)
	return s.repo.ListByCreator(userID, skip, limit)
}

func (s *CommunityService) ListJoined(userID string, skip, limit int) ([]model.Community, error) {
	skip, limit = normalizePage(skip, limit)
	return s.members.ListFor(userID, skip, limit)
}

// Create 创建社区并自动让创建者入会（仓储层同一事务）
func (s *CommunityService) Create(creatorID string, in CommunityInput) (*model.Community, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return nil, ErrValidation
	}

	community := &model.Community{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		Image:       in.Image,
		Guidelines:  in.Guidelines,
		CreatorID:   creatorID,
	}
	return s.repo.Create(community)
}

// Update 仅创建者可改。不存在和非创建者都返回 ErrNotFound。
// creator_id 建后不可变，不在可更新字段里。
func (s *CommunityService) Update(id string, in CommunityUpdate, userID string) (*model.Community, error) {
	community, err := s.repo.FindByID(id)
	if err != nil || community.CreatorID != userID {
		return nil, ErrNotFound
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.Guidelines != nil {
		fields["guidelines"] = *in.Guidelines
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(id)
}

// Delete 仅创建者可删，成员边在仓储层同一事务清掉
func (s *CommunityService) Delete(id, userID string) error {
	community, err := s.repo.FindByID(id)
	if err != nil || community.CreatorID != userID {
		return ErrNotFound
	}
	return s.repo.DeleteByID(id)
}

func (s *CommunityService) Join(ctx context.Context, communityID, userID string) error {
	if _, err := s.repo.FindByID(communityID); err != nil {
		return ErrNotFound
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return ErrNotFound
	}
	_, err := s.members.Add(ctx, communityID, userID)
	return err
}

// Leave 创建者不能退出自己的社区，只能删除社区
func (s *CommunityService) Leave(ctx context.Context, communityID, userID string) error {
	community, err := s.repo.FindByID(communityID)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return ErrNotFound
	}
	if community.CreatorID == userID {
		return ErrForbidden
	}
	_, err = s.members.Remove(ctx, communityID, userID)
	return err
}

func (s *CommunityService) IsMember(communityID, userID string) (bool, error) {
	return s.members.Contains(communityID, userID)
}

func (s *CommunityService) MemberCount(communityID string) (int64, error) {
	return s.members.CountFor(communityID)
}
