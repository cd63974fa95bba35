package ws

// Исходящие события — имена, как их знают клиенты; значения совпадают
// с константами service.Event*.
//
// Входящие команды от клиента:
const (
	// TypeSubscribeAdmin — подписка на админ-канал своего пользователя.
	TypeSubscribeAdmin = "subscribeToAdminNotifications"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// AckPayload подтверждает принятую команду.
type AckPayload struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
}
