package postgres

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BanRepo struct {
	pool *pgxpool.Pool
}

func NewBanRepo(pool *pgxpool.Pool) *BanRepo {
	return &BanRepo{pool: pool}
}

func (r *BanRepo) Add(ctx context.Context, b *domain.BannedMember) error {
	err := r.pool.QueryRow(ctx, queries.QueryAddBan, b.RoomID, b.UserID).Scan(&b.BannedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *BanRepo) Remove(ctx context.Context, roomID, userID int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryRemoveBan, roomID, userID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BanRepo) Exists(ctx context.Context, roomID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, queries.QueryBanExists, roomID, userID).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *BanRepo) ListByRoom(ctx context.Context, roomID int64) ([]domain.BannedMember, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListBans, roomID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var list []domain.BannedMember
	for rows.Next() {
		var b domain.BannedMember
		if err := rows.Scan(&b.RoomID, &b.UserID, &b.BannedAt); err != nil {
			return nil, mapPgError(err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
