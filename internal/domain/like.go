package domain

import "time"

type MessageLike struct {
	MessageID int64     `db:"message_id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
