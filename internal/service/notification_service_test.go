package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotification(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewNotificationService(db)

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")

	n, err := svc.Create(alice.ID, "Bob joined Hikers", "community_join", bob.ID, "ref-1")
	require.NoError(t, err)
	assert.False(t, n.Read)
	assert.Equal(t, alice.ID, n.UserID)
	assert.Equal(t, bob.ID, n.SenderID)

	_, err = svc.Create(alice.ID, "", "community_join", bob.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(alice.ID, "msg", "", bob.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	// 收件人必须存在
	_, err = svc.Create("missing", "msg", "system", "", "")
	assert.ErrorIs(t, err, ErrNotFound)

	// 不去重，重复内容另起一行
	_, err = svc.Create(alice.ID, "Bob joined Hikers", "community_join", bob.ID, "ref-1")
	require.NoError(t, err)
	list, err := svc.ListFor(alice.ID, 0, 20, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMarkReadOwnership(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewNotificationService(db)

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	n, err := svc.Create(alice.ID, "hello", "system", "", "")
	require.NoError(t, err)

	errOther := svc.MarkRead(n.ID, bob.ID)
	errMissing := svc.MarkRead("missing", alice.ID)
	assert.ErrorIs(t, errOther, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errOther, errMissing)

	require.NoError(t, svc.MarkRead(n.ID, alice.ID))
	// 重复标记幂等
	require.NoError(t, svc.MarkRead(n.ID, alice.ID))

	unread, err := svc.ListFor(alice.ID, 0, 20, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMarkAllRead(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewNotificationService(db)

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(alice.ID, "msg", "system", "", "")
		require.NoError(t, err)
	}
	_, err := svc.Create(bob.ID, "msg", "system", "", "")
	require.NoError(t, err)

	count, err := svc.MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// 再来一次没有未读可置
	count, err = svc.MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	unread, err := svc.ListFor(alice.ID, 0, 20, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	// 别人的未读不受影响
	unread, err = svc.ListFor(bob.ID, 0, 20, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestDeleteNotification(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewNotificationService(db)

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	n, err := svc.Create(alice.ID, "hello", "system", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(n.ID, bob.ID), ErrNotFound)
	require.NoError(t, svc.Delete(n.ID, alice.ID))
	assert.ErrorIs(t, svc.Delete(n.ID, alice.ID), ErrNotFound)

	list, err := svc.ListFor(alice.ID, 0, 20, false)
	require.NoError(t, err)
	assert.Empty(t, list)
}
