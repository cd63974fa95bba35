package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type UserRepository interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, username string, limit int) ([]domain.User, error)
	SetOnline(ctx context.Context, id int64, online bool) error
}
