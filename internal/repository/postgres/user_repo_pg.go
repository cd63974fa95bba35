package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo — read-mostly проекция: строки users принадлежат auth-service,
// здесь только чтение и флаг is_online.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, queries.QueryGetUser, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.IsOnline, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *UserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, queries.QueryUserExists, id).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *UserRepo) Search(ctx context.Context, username string, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, queries.QuerySearchUsers, strings.TrimSpace(username), limit)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsOnline, &u.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) SetOnline(ctx context.Context, id int64, online bool) error {
	tag, err := r.pool.Exec(ctx, queries.QuerySetUserOnline, id, online)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
