package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type RoomRepository interface {
	// CreateGroup создаёт групповую комнату и строку админа-создателя
	// в одной транзакции.
	CreateGroup(ctx context.Context, name string, creatorID int64) (*domain.ChatRoom, error)

	// FindOrCreatePrivate возвращает приватную комнату с точным составом
	// {userA,userB}; если её нет — создаёт комнату и обе membership-строки.
	// Проигравший гонку получает комнату победителя (pair_key UNIQUE).
	// created=true только у того, кто реально вставил комнату.
	FindOrCreatePrivate(ctx context.Context, userA, userB int64) (room *domain.ChatRoom, created bool, err error)

	Get(ctx context.Context, id int64) (*domain.ChatRoom, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.ChatRoom, string, error)
	GroupRoomsForUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}
