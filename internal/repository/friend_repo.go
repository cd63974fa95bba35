package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type FriendRepository interface {
	// CreatePending — вставка pending-ребра; дубликат по частичному
	// уникальному индексу приходит как ErrAlreadyExists.
	CreatePending(ctx context.Context, senderID, receiverID int64) (*domain.FriendEdge, error)
	GetPending(ctx context.Context, senderID, receiverID int64) (*domain.FriendEdge, error)
	PendingExists(ctx context.Context, senderID, receiverID int64) (bool, error)
	// Accept переводит pending → accepted.
	Accept(ctx context.Context, edgeID int64) error
	Delete(ctx context.Context, edgeID int64) error
	ListAccepted(ctx context.Context, userID int64) ([]domain.FriendInfo, error)
}
