package service

import (
	"context"
	"testing"

	"Sierra_Connect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommunity(t *testing.T, svc *CommunityService, creatorID, name, category string) *model.Community {
	t.Helper()
	community, err := svc.Create(creatorID, CommunityInput{
		Name:        name,
		Description: "desc",
		Category:    category,
	})
	require.NoError(t, err)
	return community
}

func TestCreateCommunityCreatorIsMember(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)
	alice := registerUser(t, users, "a@x.com", "Alice")

	community := newCommunity(t, svc, alice.ID, "Hikers", "outdoors")

	ok, err := svc.IsMember(community.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := svc.MemberCount(community.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateCommunityValidation(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)
	alice := registerUser(t, users, "a@x.com", "Alice")

	_, err := svc.Create(alice.ID, CommunityInput{Name: "x", Description: "d"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJoinIdempotent(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, svc, alice.ID, "Hikers", "outdoors")

	require.NoError(t, svc.Join(ctx, community.ID, bob.ID))
	// 重复加入不报错也不重复计数
	require.NoError(t, svc.Join(ctx, community.ID, bob.ID))

	count, err := svc.MemberCount(community.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.ErrorIs(t, svc.Join(ctx, "missing", bob.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Join(ctx, community.ID, "missing"), ErrNotFound)
}

func TestLeaveCommunity(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, svc, alice.ID, "Hikers", "outdoors")
	require.NoError(t, svc.Join(ctx, community.ID, bob.ID))

	// 创建者不能退出
	assert.ErrorIs(t, svc.Leave(ctx, community.ID, alice.ID), ErrForbidden)

	require.NoError(t, svc.Leave(ctx, community.ID, bob.ID))
	// 再退一次幂等
	require.NoError(t, svc.Leave(ctx, community.ID, bob.ID))

	count, err := svc.MemberCount(community.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpdateCommunityOwnership(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, svc, alice.ID, "Hikers", "outdoors")

	name := "Trail Runners"
	updated, err := svc.Update(community.ID, CommunityUpdate{Name: &name}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Runners", updated.Name)
	assert.Equal(t, "desc", updated.Description)

	// 非创建者和不存在表现一致
	_, errOther := svc.Update(community.ID, CommunityUpdate{Name: &name}, bob.ID)
	_, errMissing := svc.Update("missing", CommunityUpdate{Name: &name}, alice.ID)
	assert.ErrorIs(t, errOther, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errOther, errMissing)
}

func TestDeleteCommunityClearsMembership(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, svc, alice.ID, "Hikers", "outdoors")
	require.NoError(t, svc.Join(ctx, community.ID, bob.ID))

	assert.ErrorIs(t, svc.Delete(community.ID, bob.ID), ErrNotFound)
	require.NoError(t, svc.Delete(community.ID, alice.ID))

	_, err := svc.Get(community.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var edges int64
	require.NoError(t, db.Model(&model.UserCommunity{}).Where("community_id = ?", community.ID).Count(&edges).Error)
	assert.Zero(t, edges)
}

func TestListCommunitiesFilters(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewCommunityService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")

	hikers := newCommunity(t, svc, alice.ID, "Hikers", "outdoors")
	newCommunity(t, svc, alice.ID, "Readers", "books")
	chess := newCommunity(t, svc, alice.ID, "Chess", "games")
	require.NoError(t, svc.Join(ctx, hikers.ID, bob.ID))

	all, err := svc.List(0, 20, "", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// "all" 等于不过滤
	all, err = svc.List(0, 20, "all", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	books, err := svc.List(0, 20, "books", "", "")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Readers", books[0].Name)

	joined, err := svc.List(0, 20, "", "joined", bob.ID)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, hikers.ID, joined[0].ID)

	notJoined, err := svc.List(0, 20, "", "notJoined", bob.ID)
	require.NoError(t, err)
	assert.Len(t, notJoined, 2)

	// 用户不存在时忽略membership过滤
	ignored, err := svc.List(0, 20, "", "joined", "missing")
	require.NoError(t, err)
	assert.Len(t, ignored, 3)

	// 越界skip
	empty, err := svc.List(50, 20, "", "", "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	mine, err := svc.ListByCreator(alice.ID, 0, 20)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	joinedList, err := svc.ListJoined(bob.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, joinedList, 1)
	assert.Equal(t, hikers.ID, joinedList[0].ID)
	_ = chess
}
