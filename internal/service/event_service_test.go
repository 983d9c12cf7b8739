package service

import (
	"context"
	"testing"

	"Sierra_Connect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T, svc *EventService, organizerID string, in EventInput) *model.Event {
	t.Helper()
	if in.Title == "" {
		in.Title = "Meetup"
	}
	if in.Description == "" {
		in.Description = "desc"
	}
	if in.Date == "" {
		in.Date = "2026-09-12"
	}
	if in.Time == "" {
		in.Time = "18:00"
	}
	if in.Location == "" {
		in.Location = "Park"
	}
	if in.Category == "" {
		in.Category = "social"
	}
	event, err := svc.Create(organizerID, in)
	require.NoError(t, err)
	return event
}

func TestCreateEventValidation(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewEventService(db)
	alice := registerUser(t, users, "a@x.com", "Alice")

	_, err := svc.Create(alice.ID, EventInput{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(alice.ID, EventInput{
		Title: "x", Description: "d", Date: "2026-09-12",
		Time: "18:00", Location: "Park", Category: "social",
		Price: -1,
	})
	assert.ErrorIs(t, err, ErrValidation)

	event := newEvent(t, svc, alice.ID, EventInput{})
	// 组织者不自动参加
	ok, err := svc.IsAttending(event.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttendIdempotent(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewEventService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	event := newEvent(t, svc, alice.ID, EventInput{})

	require.NoError(t, svc.Attend(ctx, event.ID, bob.ID))
	require.NoError(t, svc.Attend(ctx, event.ID, bob.ID))

	count, err := svc.AttendeeCount(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 组织者可以参加也可以取消，和社区创建者不同
	require.NoError(t, svc.Attend(ctx, event.ID, alice.ID))
	require.NoError(t, svc.Unattend(ctx, event.ID, alice.ID))

	require.NoError(t, svc.Unattend(ctx, event.ID, bob.ID))
	require.NoError(t, svc.Unattend(ctx, event.ID, bob.ID))

	count, err = svc.AttendeeCount(event.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Attend(ctx, "missing", bob.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Attend(ctx, event.ID, "missing"), ErrNotFound)
}

func TestLikeUnlike(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewEventService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	event := newEvent(t, svc, alice.ID, EventInput{})

	require.NoError(t, svc.Like(ctx, event.ID, bob.ID))
	require.NoError(t, svc.Like(ctx, event.ID, bob.ID))

	ok, err := svc.IsLiked(event.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := svc.LikeCount(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 点赞和参加互不影响
	attending, err := svc.IsAttending(event.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, attending)

	require.NoError(t, svc.Unlike(ctx, event.ID, bob.ID))
	ok, err = svc.IsLiked(event.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateEventOwnership(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewEventService(db)

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	event := newEvent(t, svc, alice.ID, EventInput{})

	title := "Evening Run"
	updated, err := svc.Update(event.ID, EventUpdate{Title: &title}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening Run", updated.Title)

	bad := -5.0
	_, err = svc.Update(event.ID, EventUpdate{Price: &bad}, alice.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, errOther := svc.Update(event.ID, EventUpdate{Title: &title}, bob.ID)
	_, errMissing := svc.Update("missing", EventUpdate{Title: &title}, alice.ID)
	assert.ErrorIs(t, errOther, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errOther, errMissing)
}

func TestDeleteEventClearsEdges(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewEventService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")
	event := newEvent(t, svc, alice.ID, EventInput{})
	require.NoError(t, svc.Attend(ctx, event.ID, bob.ID))
	require.NoError(t, svc.Like(ctx, event.ID, bob.ID))

	assert.ErrorIs(t, svc.Delete(event.ID, bob.ID), ErrNotFound)
	require.NoError(t, svc.Delete(event.ID, alice.ID))

	_, err := svc.Get(event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var attendees, likes int64
	require.NoError(t, db.Model(&model.UserEvent{}).Where("event_id = ?", event.ID).Count(&attendees).Error)
	require.NoError(t, db.Model(&model.UserLikedEvent{}).Where("event_id = ?", event.ID).Count(&likes).Error)
	assert.Zero(t, attendees)
	assert.Zero(t, likes)
}

func TestListEventsFilters(t *testing.T) {
	db := setupDB(t)
	users := NewUserService(db)
	svc := NewEventService(db)
	ctx := context.Background()

	alice := registerUser(t, users, "a@x.com", "Alice")
	bob := registerUser(t, users, "b@x.com", "Bob")

	free := newEvent(t, svc, alice.ID, EventInput{Title: "Free Walk", Category: "outdoors", Location: "Central Park"})
	paid := newEvent(t, svc, alice.ID, EventInput{Title: "Workshop", Category: "tech", Location: "Downtown Hall", Price: 25})
	newEvent(t, svc, bob.ID, EventInput{Title: "Concert", Category: "music", Location: "Arena", Price: 50})

	all, err := svc.List(0, 20, "", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	freeOnly, err := svc.List(0, 20, "", "", "free")
	require.NoError(t, err)
	require.Len(t, freeOnly, 1)
	assert.Equal(t, free.ID, freeOnly[0].ID)

	paidOnly, err := svc.List(0, 20, "", "", "paid")
	require.NoError(t, err)
	assert.Len(t, paidOnly, 2)

	tech, err := svc.List(0, 20, "tech", "", "")
	require.NoError(t, err)
	require.Len(t, tech, 1)
	assert.Equal(t, paid.ID, tech[0].ID)

	// 地点模糊匹配
	downtown, err := svc.List(0, 20, "", "town", "")
	require.NoError(t, err)
	require.Len(t, downtown, 1)
	assert.Equal(t, paid.ID, downtown[0].ID)

	empty, err := svc.List(50, 20, "", "", "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	mine, err := svc.ListByOrganizer(alice.ID, 0, 20)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, svc.Attend(ctx, paid.ID, bob.ID))
	require.NoError(t, svc.Like(ctx, free.ID, bob.ID))

	attending, err := svc.ListAttending(bob.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, attending, 1)
	assert.Equal(t, paid.ID, attending[0].ID)

	liked, err := svc.ListLiked(bob.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, free.ID, liked[0].ID)
}
