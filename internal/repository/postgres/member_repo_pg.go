package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

func (r *MemberRepo) Add(ctx context.Context, m *domain.ChatRoomMember) error {
	err := r.pool.QueryRow(ctx, queries.QueryAddMember, m.RoomID, m.UserID, m.Role).
		Scan(&m.JoinedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *MemberRepo) Remove(ctx context.Context, roomID, userID int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryRemoveMember, roomID, userID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MemberRepo) Get(ctx context.Context, roomID, userID int64) (*domain.ChatRoomMember, error) {
	var m domain.ChatRoomMember
	err := r.pool.QueryRow(ctx, queries.QueryGetMember, roomID, userID).
		Scan(&m.RoomID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &m, nil
}

func (r *MemberRepo) Exists(ctx context.Context, roomID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, queries.QueryMemberExists, roomID, userID).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *MemberRepo) ListByRoom(ctx context.Context, roomID int64) ([]domain.ChatRoomMember, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListMembers, roomID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var list []domain.ChatRoomMember
	for rows.Next() {
		var m domain.ChatRoomMember
		if err := rows.Scan(&m.RoomID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, mapPgError(err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MemberRepo) ListUsersByRoom(ctx context.Context, roomID int64) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListMemberUsers, roomID)
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

func (r *MemberRepo) FirstRoomForUser(ctx context.Context, userID int64) (*domain.ChatRoom, error) {
	return scanRoom(r.pool.QueryRow(ctx, queries.QueryFirstRoomForUser, userID))
}
