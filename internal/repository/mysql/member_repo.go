package mysql

import (
	"context"

	"Sierra_Connect/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Add 幂等入会：边已存在时不报错不重复。真正新增时同事务写 outbox。
func (r *CommunityMemberRepository) Add(ctx context.Context, communityID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserCommunity{UserID: userID, CommunityID: communityID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "join", userID, communityID)
	})
	return changed, err
}

// Remove 幂等退会：边不存在视为成功。创建者不能退会的限制在服务层。
func (r *CommunityMemberRepository) Remove(ctx context.Context, communityID, userID string) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ? AND user_id = ?", communityID, userID).
			Delete(&model.UserCommunity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertOutbox(tx, "leave", userID, communityID)
	})
	return changed, err
}

func (r *CommunityMemberRepository) Contains(communityID, userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserCommunity{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) CountFor(communityID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserCommunity{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

// ListFor 该用户已加入的社区
func (r *CommunityMemberRepository) ListFor(userID string, offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Model(&model.Community{}).
		Joins("JOIN user_community uc ON uc.community_id = communities.id").
		Where("uc.user_id = ?", userID).
		Order("communities.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}
