package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
)

// NotificationService — персистентные уведомления + push в топик
// получателя. Запись в стор первична; push поверх, best effort.
type NotificationService struct {
	repo repository.NotificationRepository
	pub  Publisher
}

func NewNotificationService(repo repository.NotificationRepository, pub Publisher) *NotificationService {
	return &NotificationService{repo: repo, pub: pub}
}

// Create сохраняет уведомление и пушит его в user-топик получателя.
func (s *NotificationService) Create(ctx context.Context, recipientID int64, text string, src NotificationSource) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:    recipientID,
		RoomID:    src.RoomID,
		MessageID: src.MessageID,
		FriendID:  src.FriendID,
		Message:   text,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("notificationRepo.Create: %w", storeErr(err))
	}

	s.pub.Publish(UserTopic(recipientID), EventNotification, notificationEvent{
		NotificationID: n.ID,
		Message:        n.Message,
		ChatRoomID:     n.RoomID,
		MessageID:      n.MessageID,
		FriendID:       n.FriendID,
	})

	return n, nil
}

func (s *NotificationService) List(ctx context.Context, userID int64) ([]domain.Notification, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

// MarkAsRead идемпотентен: повторный вызов по прочитанному — не ошибка.
func (s *NotificationService) MarkAsRead(ctx context.Context, id int64) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotificationNotFound
		}
		return storeErr(err)
	}
	return nil
}

// MarkAllAsReadFromSender гасит все непрочитанные уведомления
// recipientID, порождённые сообщениями senderID. Возвращает, сколько
// записей задето; ноль — нормальный результат.
func (s *NotificationService) MarkAllAsReadFromSender(ctx context.Context, recipientID, senderID int64) (int64, error) {
	n, err := s.repo.MarkAllReadFromSender(ctx, recipientID, senderID)
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (s *NotificationService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotificationNotFound
		}
		return storeErr(err)
	}
	return nil
}

// UnreadCountsBySender — badge-счётчики «от кого сколько». Пустой
// список, если непрочитанного нет.
func (s *NotificationService) UnreadCountsBySender(ctx context.Context, userID int64) ([]domain.UnreadBySender, error) {
	counts, err := s.repo.UnreadCountsBySender(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return counts, nil
}
