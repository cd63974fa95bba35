package service

import "strconv"

// Publisher — узкий интерфейс real-time канала. Доставка best-effort:
// реализация логирует сбои сама и никогда не возвращает их сюда.
// Персистентные уведомления — единственный надёжный источник.
type Publisher interface {
	// Publish шлёт событие подписчикам топика.
	Publish(topic, event string, payload any)
	// Broadcast шлёт событие всем подключённым.
	Broadcast(event string, payload any)
}

// Имена событий — как их знают клиенты.
const (
	EventReceiveMessage    = "receiveMessage"
	EventNotification      = "notification"
	EventAdminNotification = "adminNotification"
)

func UserTopic(id int64) string { return "user:" + strconv.FormatInt(id, 10) }

func AdminTopic(id int64) string { return "admin:" + strconv.FormatInt(id, 10) }

// messageEvent — payload receiveMessage.
type messageEvent struct {
	MessageID       int64  `json:"message_id"`
	ChatRoomID      *int64 `json:"chat_room_id,omitempty"`
	SenderID        *int64 `json:"sender_id,omitempty"`
	Content         string `json:"content"`
	ContentType     string `json:"content_type"`
	ParentMessageID *int64 `json:"parent_message_id,omitempty"`
	CreatedAtUnix   int64  `json:"created_at_unix"`
}

// notificationEvent — payload notification.
type notificationEvent struct {
	NotificationID int64  `json:"notification_id"`
	Message        string `json:"message"`
	ChatRoomID     *int64 `json:"chat_room_id,omitempty"`
	MessageID      *int64 `json:"message_id,omitempty"`
	FriendID       *int64 `json:"friend_id,omitempty"`
}
