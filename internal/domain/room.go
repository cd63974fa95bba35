package domain

import "time"

type ChatRoom struct {
	ID        int64     `db:"id"`
	Name      *string   `db:"name"`
	IsGroup   bool      `db:"is_group"`
	CreatedAt time.Time `db:"created_at"`
}
