package mysql

import (
	"Sierra_Connect/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create 建社区并让创建者入会，同一事务，任一步失败整体回滚
func (r *CommunityRepository) Create(c *model.Community) (*model.Community, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserCommunity{UserID: c.CreatorID, CommunityID: c.ID}).Error
	})
	return c, err
}

func (r *CommunityRepository) FindByID(id string) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, "id = ?", id).Error
	return &community, err
}

// List 按分类和成员关系过滤，创建时间倒序，过滤后再分页
func (r *CommunityRepository) List(offset, limit int, category, membershipFilter, userID string) ([]model.Community, error) {
	q := r.DB.Model(&model.Community{})

	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}

	if membershipFilter != "" && membershipFilter != "all" && userID != "" {
		sub := r.DB.Model(&model.UserCommunity{}).
			Select("community_id").
			Where("user_id = ?", userID)
		switch membershipFilter {
		case "joined":
			q = q.Where("id IN (?)", sub)
		case "notJoined":
			q = q.Where("id NOT IN (?)", sub)
		}
	}

	var list []model.Community
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) ListByCreator(userID string, offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Where("creator_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// UpdateFields 只更新给定的列，权限判断在服务层
func (r *CommunityRepository) UpdateFields(id string, fields map[string]any) error {
	return r.DB.Model(&model.Community{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteByID 硬删除社区，同一事务内清掉全部成员边
func (r *CommunityRepository) DeleteByID(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", id).Delete(&model.UserCommunity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{}, "id = ?", id).Error
	})
}
