package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type fixture struct {
	store *memStore
	pub   *capturePublisher

	rooms         *RoomService
	messages      *MessageService
	friends       *FriendService
	notifications *NotificationService
	likes         *LikeService
}

func newFixture() *fixture {
	store := newMemStore()
	pub := &capturePublisher{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	memberRepo := memMemberRepo{s: store}
	banRepo := memBanRepo{s: store}
	messageRepo := memMessageRepo{s: store}
	friendRepo := memFriendRepo{s: store}
	notificationRepo := memNotificationRepo{s: store}
	userRepo := memUserRepo{s: store}
	likeRepo := memLikeRepo{s: store}

	notifications := NewNotificationService(notificationRepo, pub)
	return &fixture{
		store:         store,
		pub:           pub,
		rooms:         NewRoomService(store, memberRepo, banRepo, userRepo),
		messages:      NewMessageService(messageRepo, store, memberRepo, userRepo, notifications, pub, 0, log),
		friends:       NewFriendService(friendRepo, userRepo, notifications, log),
		notifications: notifications,
		likes:         NewLikeService(likeRepo, messageRepo, userRepo),
	}
}

func TestCreateGroupRoom(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	ctx := context.Background()

	room, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)
	require.NotNil(t, room.Name)
	assert.Equal(t, "general", *room.Name)
	assert.True(t, room.IsGroup)

	// создатель сразу админ
	users, err := f.rooms.ListMembers(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
}

func TestCreateGroupRoomUnknownCreator(t *testing.T) {
	f := newFixture()

	_, err := f.rooms.CreateGroupRoom(context.Background(), "general", 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindOrCreatePrivateRoom(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	first, err := f.rooms.FindOrCreatePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, first.IsGroup)

	// повторный вызов в любом порядке возвращает ту же комнату
	again, err := f.rooms.FindOrCreatePrivateRoom(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestFindOrCreatePrivateRoomReacquireAfterLeave(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	room, err := f.rooms.FindOrCreatePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	require.NoError(t, f.rooms.RemoveMember(ctx, room.ID, 1, 1))

	// после выхода повторный вызов возвращает ту же комнату
	// и восстанавливает обе строки membership
	again, err := f.rooms.FindOrCreatePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID)

	users, err := f.rooms.ListMembers(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
}

func TestFindOrCreatePrivateRoomSelf(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")

	_, err := f.rooms.FindOrCreatePrivateRoom(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrSelfRoom)
}

func TestFindOrCreatePrivateRoomConcurrent(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	const n = 16
	ids := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			room, err := f.rooms.FindOrCreatePrivateRoom(ctx, 1, 2)
			if err == nil {
				ids[i] = room.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i], "all callers must land in one room")
	}
}

func TestAddMember(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	room, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)

	m, err := f.rooms.AddMember(ctx, room.ID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, m.Role)

	_, err = f.rooms.AddMember(ctx, room.ID, 2, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	_, err = f.rooms.AddMember(ctx, 999, 2, "")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = f.rooms.AddMember(ctx, room.ID, 999, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAddMemberBanned(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	room, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)
	_, err = f.rooms.AddMember(ctx, room.ID, 2, "")
	require.NoError(t, err)

	_, err = f.rooms.Ban(ctx, room.ID, 2, 1)
	require.NoError(t, err)
	require.NoError(t, f.rooms.RemoveMember(ctx, room.ID, 1, 2))

	// забаненный не может вернуться
	_, err = f.rooms.AddMember(ctx, room.ID, 2, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyBanned)
}

func TestRemoveMemberRules(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	f.store.addUser(3, "carol")
	ctx := context.Background()

	room, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)
	_, err = f.rooms.AddMember(ctx, room.ID, 2, "")
	require.NoError(t, err)
	_, err = f.rooms.AddMember(ctx, room.ID, 3, "")
	require.NoError(t, err)

	// несуществующее membership проверяется раньше прав запрашивающего
	err = f.rooms.RemoveMember(ctx, room.ID, 2, 99)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	// обычный участник не может удалить другого
	err = f.rooms.RemoveMember(ctx, room.ID, 2, 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// выйти самому можно
	require.NoError(t, f.rooms.RemoveMember(ctx, room.ID, 3, 3))

	// админ может удалить другого
	require.NoError(t, f.rooms.RemoveMember(ctx, room.ID, 1, 2))

	err = f.rooms.RemoveMember(ctx, room.ID, 1, 2)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestBanFlow(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	f.store.addUser(3, "carol")
	ctx := context.Background()

	room, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)
	_, err = f.rooms.AddMember(ctx, room.ID, 2, "")
	require.NoError(t, err)

	// не-участник не может банить
	_, err = f.rooms.Ban(ctx, room.ID, 2, 3)
	assert.ErrorIs(t, err, domain.ErrNotMember)

	// нельзя банить не-участника
	_, err = f.rooms.Ban(ctx, room.ID, 3, 1)
	assert.ErrorIs(t, err, domain.ErrNotMember)

	b, err := f.rooms.Ban(ctx, room.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.UserID)

	// бан не удаляет membership
	banned, err := f.rooms.IsBanned(ctx, room.ID, 2)
	require.NoError(t, err)
	assert.True(t, banned)
	users, err := f.rooms.ListMembers(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = f.rooms.Ban(ctx, room.ID, 2, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyBanned)

	require.NoError(t, f.rooms.Unban(ctx, room.ID, 2, 1))
	err = f.rooms.Unban(ctx, room.ID, 2, 1)
	assert.ErrorIs(t, err, domain.ErrBanNotFound)
}

func TestCurrentRoomForUser(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	ctx := context.Background()

	_, err := f.rooms.CurrentRoomForUser(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	room, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)

	got, err := f.rooms.CurrentRoomForUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
}

func TestGroupRoomsForUser(t *testing.T) {
	f := newFixture()
	f.store.addUser(1, "alice")
	f.store.addUser(2, "bob")
	ctx := context.Background()

	_, err := f.rooms.CreateGroupRoom(ctx, "general", 1)
	require.NoError(t, err)
	_, err = f.rooms.FindOrCreatePrivateRoom(ctx, 1, 2)
	require.NoError(t, err)

	rooms, err := f.rooms.GroupRoomsForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.True(t, rooms[0].IsGroup)
}
