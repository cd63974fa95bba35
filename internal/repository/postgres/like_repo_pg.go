package postgres

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

func (r *LikeRepo) Add(ctx context.Context, l *domain.MessageLike) error {
	err := r.pool.QueryRow(ctx, queries.QueryAddLike, l.MessageID, l.UserID).Scan(&l.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *LikeRepo) Remove(ctx context.Context, messageID, userID int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryRemoveLike, messageID, userID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *LikeRepo) ListByMessage(ctx context.Context, messageID int64) ([]domain.MessageLike, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListLikes, messageID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var likes []domain.MessageLike
	for rows.Next() {
		var l domain.MessageLike
		if err := rows.Scan(&l.MessageID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
