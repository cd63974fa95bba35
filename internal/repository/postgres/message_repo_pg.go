package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	err := r.pool.QueryRow(ctx, queries.QueryCreateMessage,
		m.RoomID, m.SenderID, m.Content, m.ContentType, m.ParentMessageID).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *MessageRepo) Get(ctx context.Context, id int64) (*domain.Message, error) {
	return scanMessage(r.pool.QueryRow(ctx, queries.QueryGetMessage, id))
}

func (r *MessageRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, queries.QueryMessageExists, id).Scan(&exists)
	return exists, mapPgError(err)
}

// ListByRoom — история комнаты с курсорной пагинацией (created_at,id DESC).
func (r *MessageRepo) ListByRoom(ctx context.Context, roomID int64, after string, limit int) ([]domain.Message, string, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	cur, err := DecodeCursor(after)
	if err != nil {
		return nil, "", err
	}

	var createdAt, id any
	if cur != nil {
		createdAt = cur.CreatedAt
		id = cur.ID
	}

	rows, err := r.pool.Query(ctx, queries.QueryListMessages, roomID, createdAt, id, limit)
	if err != nil {
		return nil, "", mapPgError(err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content,
			&m.ContentType, &m.ParentMessageID, &m.CreatedAt); err != nil {
			return nil, "", mapPgError(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", mapPgError(err)
	}

	var next string
	if len(out) == limit {
		last := out[len(out)-1]
		if c, e := EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID}); e == nil {
			next = c
		}
	}
	return out, next, nil
}

func (r *MessageRepo) Update(ctx context.Context, id int64, patch repository.MessagePatch) error {
	setParts := make([]string, 0, 2)
	args := make([]any, 0, 3)
	i := 1

	if patch.Content != nil {
		setParts = append(setParts, "content = $"+strconv.Itoa(i))
		args = append(args, *patch.Content)
		i++
	}
	if patch.ContentType != nil {
		setParts = append(setParts, "content_type = $"+strconv.Itoa(i))
		args = append(args, *patch.ContentType)
		i++
	}
	if len(setParts) == 0 {
		return nil
	}

	sql := "UPDATE messages SET " + strings.Join(setParts, ", ") + " WHERE id = $" + strconv.Itoa(i) + ";"
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MessageRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryDeleteMessage, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content,
		&m.ContentType, &m.ParentMessageID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &m, nil
}
