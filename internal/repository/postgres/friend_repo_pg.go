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

type FriendRepo struct {
	pool *pgxpool.Pool
}

func NewFriendRepo(pool *pgxpool.Pool) *FriendRepo {
	return &FriendRepo{pool: pool}
}

func (r *FriendRepo) CreatePending(ctx context.Context, senderID, receiverID int64) (*domain.FriendEdge, error) {
	edge := &domain.FriendEdge{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.FriendPending,
	}
	err := r.pool.QueryRow(ctx, queries.QueryCreatePendingFriend, senderID, receiverID).
		Scan(&edge.ID, &edge.CreatedAt)
	if err != nil {
		// 23505 от частичного уникального индекса по pending-паре
		return nil, mapPgError(err)
	}
	return edge, nil
}

func (r *FriendRepo) GetPending(ctx context.Context, senderID, receiverID int64) (*domain.FriendEdge, error) {
	var e domain.FriendEdge
	err := r.pool.QueryRow(ctx, queries.QueryGetPendingFriend, senderID, receiverID).
		Scan(&e.ID, &e.SenderID, &e.ReceiverID, &e.Status, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &e, nil
}

func (r *FriendRepo) PendingExists(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, queries.QueryPendingFriendExists, senderID, receiverID).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *FriendRepo) Accept(ctx context.Context, edgeID int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryAcceptFriend, edgeID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FriendRepo) Delete(ctx context.Context, edgeID int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryDeleteFriend, edgeID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FriendRepo) ListAccepted(ctx context.Context, userID int64) ([]domain.FriendInfo, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListAcceptedFriends, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []domain.FriendInfo
	for rows.Next() {
		var fi domain.FriendInfo
		if err := rows.Scan(&fi.EdgeID, &fi.Since,
			&fi.User.ID, &fi.User.Username, &fi.User.Email,
			&fi.User.IsOnline, &fi.User.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		out = append(out, fi)
	}
	return out, rows.Err()
}
