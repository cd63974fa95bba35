package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateGroupRoomRequest struct {
	Name string `json:"name"`
}

type PrivateRoomRequest struct {
	PeerID int64 `json:"peer_id"`
}

type UpdateRoomRequest struct {
	Name string `json:"name"`
}

type RoomItem struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name,omitempty"`
	IsGroup   bool      `json:"is_group"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomsListResponse struct {
	Items      []RoomItem `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type AddMemberRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

type MemberItem struct {
	RoomID   int64     `json:"room_id"`
	UserID   int64     `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type BanRequest struct {
	UserID int64 `json:"user_id"`
}

type BanItem struct {
	RoomID   int64     `json:"room_id"`
	UserID   int64     `json:"user_id"`
	BannedAt time.Time `json:"banned_at"`
}

type UserItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsOnline bool   `json:"is_online"`
}

type UsersResponse struct {
	Items []UserItem `json:"items"`
}

type CreateMessageRequest struct {
	Content         string `json:"content"`
	ContentType     string `json:"content_type"`
	ParentMessageID *int64 `json:"parent_message_id,omitempty"`
}

type UpdateMessageRequest struct {
	Content     *string `json:"content,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
}

type MessageItem struct {
	ID              int64     `json:"id"`
	ChatRoomID      *int64    `json:"chat_room_id,omitempty"`
	SenderID        *int64    `json:"sender_id,omitempty"`
	Content         string    `json:"content"`
	ContentType     string    `json:"content_type"`
	ParentMessageID *int64    `json:"parent_message_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type MessagesResponse struct {
	Items      []MessageItem `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type LikeItem struct {
	MessageID int64     `json:"message_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LikesResponse struct {
	Items []LikeItem `json:"items"`
}

type FriendRequestRequest struct {
	ReceiverID int64 `json:"receiver_id"`
}

type FriendEdgeItem struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type FriendItem struct {
	EdgeID int64     `json:"edge_id"`
	User   UserItem  `json:"user"`
	Since  time.Time `json:"since"`
}

type FriendsResponse struct {
	Items []FriendItem `json:"items"`
}

type NotificationItem struct {
	ID         int64     `json:"id"`
	Message    string    `json:"message"`
	ChatRoomID *int64    `json:"chat_room_id,omitempty"`
	MessageID  *int64    `json:"message_id,omitempty"`
	FriendID   *int64    `json:"friend_id,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type NotificationsResponse struct {
	Items []NotificationItem `json:"items"`
}

type MarkedResponse struct {
	Marked int64 `json:"marked"`
}

type UnreadCountItem struct {
	SenderID int64 `json:"sender_id"`
	Count    int64 `json:"count"`
}

type UnreadCountsResponse struct {
	Items []UnreadCountItem `json:"items"`
}

type OnlineResponse struct {
	UserID int64 `json:"user_id"`
	Online bool  `json:"online"`
}
