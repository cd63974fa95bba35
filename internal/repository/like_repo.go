package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type LikeRepository interface {
	Add(ctx context.Context, l *domain.MessageLike) error
	Remove(ctx context.Context, messageID, userID int64) error
	ListByMessage(ctx context.Context, messageID int64) ([]domain.MessageLike, error)
}
