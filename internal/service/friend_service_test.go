package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

func TestSendFriendRequest(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	edge, err := f.friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.FriendPending, edge.Status)

	// получатель уведомлён
	list, err := f.notifications.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "You have received a friend request from alice", list[0].Message)
	require.NotNil(t, list[0].FriendID)
	assert.Equal(t, edge.ID, *list[0].FriendID)
}

func TestSendFriendRequestSelf(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")

	_, err := f.friends.SendRequest(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrSelfRequest)
}

func TestSendFriendRequestUnknownUsers(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	ctx := context.Background()

	_, err := f.friends.SendRequest(ctx, 1, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.friends.SendRequest(ctx, 99, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSendFriendRequestDuplicatePending(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	_, err := f.friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)

	_, err = f.friends.SendRequest(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrRequestPending)
}

func TestAcceptFriendRequest(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	_, err := f.friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)

	require.NoError(t, f.friends.AcceptRequest(ctx, 2, 1))

	// отправитель уведомлён о принятии
	list, err := f.notifications.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob accepted your friend request", list[0].Message)

	// дружба видна с обеих сторон
	for _, uid := range []int64{1, 2} {
		friends, err := f.friends.ListFriends(ctx, uid)
		require.NoError(t, err)
		require.Len(t, friends, 1)
	}

	// повторный accept — заявки уже нет
	err = f.friends.AcceptRequest(ctx, 2, 1)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestRejectFriendRequest(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	_, err := f.friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)

	require.NoError(t, f.friends.RejectRequest(ctx, 2, 1))

	list, err := f.notifications.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob rejected your friend request", list[0].Message)

	friends, err := f.friends.ListFriends(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// reject удаляет ребро: можно прислать заявку заново
	_, err = f.friends.SendRequest(ctx, 1, 2)
	assert.NoError(t, err)
}

func TestAcceptWrongDirection(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	_, err := f.friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)

	// отправитель не может принять свою же заявку
	err = f.friends.AcceptRequest(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestHasPendingRequest(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	ok, err := f.friends.HasPendingRequest(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.friends.SendRequest(ctx, 1, 2)
	require.NoError(t, err)

	ok, err = f.friends.HasPendingRequest(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}
