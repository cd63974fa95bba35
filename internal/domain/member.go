package domain

import "time"

type RoomRole string

const (
	RoleMember RoomRole = "member"
	RoleAdmin  RoomRole = "admin"
)

type ChatRoomMember struct {
	RoomID   int64     `db:"room_id"`
	UserID   int64     `db:"user_id"`
	Role     RoomRole  `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

// BannedMember — бан ортогонален membership: запись может существовать
// независимо от строки участника.
type BannedMember struct {
	RoomID   int64     `db:"room_id"`
	UserID   int64     `db:"user_id"`
	BannedAt time.Time `db:"banned_at"`
}
