package service

import (
	"context"
	"errors"
	"testing"

	"Sierra_Connect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeChangesWriteOutbox(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	communities := NewCommunityService(db)
	events := NewEventService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, communities, alice.ID, "Hikers", "outdoors")
	event := newEvent(t, events, alice.ID, EventInput{})

	require.NoError(t, communities.Join(ctx, community.ID, bob.ID))
	// 重复加入没有变化，不追加事件
	require.NoError(t, communities.Join(ctx, community.ID, bob.ID))
	require.NoError(t, communities.Leave(ctx, community.ID, bob.ID))
	require.NoError(t, events.Attend(ctx, event.ID, bob.ID))
	require.NoError(t, events.Like(ctx, event.ID, bob.ID))
	require.NoError(t, events.Unlike(ctx, event.ID, bob.ID))

	var rows []model.ActivityOutbox
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)

	types := make([]string, 0, len(rows))
	for _, ob := range rows {
		types = append(types, ob.EventType)
		assert.EqualValues(t, 0, ob.Status)
		assert.NotEmpty(t, ob.Payload)
	}
	assert.Equal(t, []string{"join", "leave", "attend", "like", "unlike"}, types)
	assert.Equal(t, bob.ID, rows[0].UserID)
	assert.Equal(t, community.ID, rows[0].SubjectID)
}

func TestRelayerDrain(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	communities := NewCommunityService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, communities, alice.ID, "Hikers", "outdoors")
	require.NoError(t, communities.Join(ctx, community.ID, bob.ID))
	require.NoError(t, communities.Leave(ctx, community.ID, bob.ID))

	var sent []string
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.ActivityOutbox) error {
		sent = append(sent, ob.EventType)
		return nil
	})
	relayer.drainOnce(ctx)

	assert.Equal(t, []string{"join", "leave"}, sent)

	var pending int64
	require.NoError(t, db.Model(&model.ActivityOutbox{}).Where("status = 0").Count(&pending).Error)
	assert.Zero(t, pending)

	var done int64
	require.NoError(t, db.Model(&model.ActivityOutbox{}).Where("status = 1").Count(&done).Error)
	assert.Equal(t, int64(2), done)

	// 没有待投递时不再触发sender
	sent = nil
	relayer.drainOnce(ctx)
	assert.Empty(t, sent)
}

func TestRelayerRetryOnSendFailure(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	communities := NewCommunityService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	community := newCommunity(t, communities, alice.ID, "Hikers", "outdoors")
	require.NoError(t, communities.Join(ctx, community.ID, bob.ID))

	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.ActivityOutbox) error {
		return errors.New("broker down")
	})
	relayer.drainOnce(ctx)

	var ob model.ActivityOutbox
	require.NoError(t, db.First(&ob).Error)
	assert.EqualValues(t, 2, ob.Status)
	assert.Equal(t, 1, ob.Retry)
}
