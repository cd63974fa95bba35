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

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	err := r.pool.QueryRow(ctx, queries.QueryCreateNotification,
		n.UserID, n.RoomID, n.MessageID, n.FriendID, n.Message).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *NotificationRepo) Get(ctx context.Context, id int64) (*domain.Notification, error) {
	var n domain.Notification
	err := r.pool.QueryRow(ctx, queries.QueryGetNotification, id).
		Scan(&n.ID, &n.UserID, &n.RoomID, &n.MessageID, &n.FriendID,
			&n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &n, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListNotifications, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.RoomID, &n.MessageID, &n.FriendID,
			&n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead — повторная пометка уже прочитанного не считается ошибкой.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryMarkNotificationRead, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) MarkAllReadFromSender(ctx context.Context, recipientID, senderID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, queries.QueryMarkAllReadFromSender, recipientID, senderID)
	if err != nil {
		return 0, mapPgError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryDeleteNotification, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) UnreadCountsBySender(ctx context.Context, userID int64) ([]domain.UnreadBySender, error) {
	rows, err := r.pool.Query(ctx, queries.QueryUnreadCountsBySender, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.UnreadBySender, 0, 8)
	for rows.Next() {
		var u domain.UnreadBySender
		if err := rows.Scan(&u.SenderID, &u.Count); err != nil {
			return nil, mapPgError(err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
