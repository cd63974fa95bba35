package repository

import (
	"context"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, id int64) (*domain.Notification, error)
	// ListByUser — новые сверху (created_at DESC, id DESC).
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	// MarkRead идемпотентен: уже прочитанная запись — не ошибка.
	MarkRead(ctx context.Context, id int64) error
	// MarkAllReadFromSender помечает прочитанными все непрочитанные
	// уведомления recipientID, чьё сообщение-источник написал senderID.
	MarkAllReadFromSender(ctx context.Context, recipientID, senderID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	// UnreadCountsBySender группирует непрочитанные по автору
	// сообщения-источника; уведомления без message-источника не считаются.
	UnreadCountsBySender(ctx context.Context, userID int64) ([]domain.UnreadBySender, error)
}
