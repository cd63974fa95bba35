package domain

import "time"

// Notification — персистентная запись о событии для пользователя.
// Ровно один источник: message, friend-ребро или admin/system.
type Notification struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"` // получатель
	RoomID    *int64    `db:"room_id"`
	MessageID *int64    `db:"message_id"`
	FriendID  *int64    `db:"friend_id"`
	Message   string    `db:"message"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

type UnreadBySender struct {
	SenderID int64
	Count    int64
}
