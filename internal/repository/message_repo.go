package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type MessagePatch struct {
	Content     *string
	ContentType *domain.ContentType
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	Get(ctx context.Context, id int64) (*domain.Message, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByRoom(ctx context.Context, roomID int64, after string, limit int) ([]domain.Message, string, error)
	Update(ctx context.Context, id int64, patch MessagePatch) error
	Delete(ctx context.Context, id int64) error
}
