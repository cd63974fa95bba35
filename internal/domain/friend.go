package domain

import "time"

type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	// rejected существует в enum, но не хранится: reject удаляет ребро.
	FriendRejected FriendStatus = "rejected"
)

// FriendEdge — направленное ребро запроса дружбы (sender → receiver).
type FriendEdge struct {
	ID         int64        `db:"id"`
	SenderID   int64        `db:"sender_id"`
	ReceiverID int64        `db:"receiver_id"`
	Status     FriendStatus `db:"status"`
	CreatedAt  time.Time    `db:"created_at"`
}

// FriendInfo — принятое ребро вместе с пользователем на другом конце.
type FriendInfo struct {
	EdgeID int64
	User   User
	Since  time.Time
}
