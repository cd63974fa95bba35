package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type MemberRepository interface {
	Add(ctx context.Context, m *domain.ChatRoomMember) error
	Remove(ctx context.Context, roomID, userID int64) error
	Get(ctx context.Context, roomID, userID int64) (*domain.ChatRoomMember, error)
	Exists(ctx context.Context, roomID, userID int64) (bool, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.ChatRoomMember, error)
	// ListUsersByRoom — участники вместе с данными пользователей
	// (нужно для fan-out и списка участников).
	ListUsersByRoom(ctx context.Context, roomID int64) ([]domain.User, error)
	// FirstRoomForUser — комната, в которой пользователь состоит сейчас
	// (ErrNotFound, если ни в одной).
	FirstRoomForUser(ctx context.Context, userID int64) (*domain.ChatRoom, error)
}

type BanRepository interface {
	Add(ctx context.Context, b *domain.BannedMember) error
	Remove(ctx context.Context, roomID, userID int64) error
	Exists(ctx context.Context, roomID, userID int64) (bool, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.BannedMember, error)
}
