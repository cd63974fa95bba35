package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
)

// Notifier — то, что нужно message/friend-сервисам от уведомлений.
type Notifier interface {
	Create(ctx context.Context, recipientID int64, text string, src NotificationSource) (*domain.Notification, error)
}

// NotificationSource — откуда уведомление взялось; ровно одно-два поля
// заполнены в зависимости от источника.
type NotificationSource struct {
	RoomID    *int64
	MessageID *int64
	FriendID  *int64
}

// urlRe — контент типа link обязан быть URL-ом.
var urlRe = regexp.MustCompile(`(?i)^(https?://)?([\w-]+\.)+[\w-]+(/[\w\-./?%&=+#~]*)?$`)

const defaultMaxContentLen = 4000

type MessageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
	memberRepo  repository.MemberRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	pub         Publisher

	maxContentLen int
	log           *slog.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	roomRepo repository.RoomRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	pub Publisher,
	maxContentLen int,
	log *slog.Logger,
) *MessageService {
	if maxContentLen <= 0 {
		maxContentLen = defaultMaxContentLen
	}
	return &MessageService{
		messageRepo:   messageRepo,
		roomRepo:      roomRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		pub:           pub,
		maxContentLen: maxContentLen,
		log:           log,
	}
}

// Create сохраняет сообщение, рассылает receiveMessage и создаёт
// персистентные уведомления остальным участникам комнаты. Сбой
// рассылки/уведомлений не откатывает уже сохранённое сообщение.
func (s *MessageService) Create(ctx context.Context, roomID, senderID int64, content string, contentType domain.ContentType, parentID *int64) (*domain.Message, error) {
	if _, err := s.roomRepo.Get(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, storeErr(err)
	}

	content = strings.TrimSpace(content)
	if err := s.validateContent(content, contentType); err != nil {
		return nil, err
	}

	if parentID != nil {
		ok, err := s.messageRepo.Exists(ctx, *parentID)
		if err != nil {
			return nil, storeErr(err)
		}
		if !ok {
			return nil, domain.ErrParentNotFound
		}
	}

	msg := &domain.Message{
		RoomID:          &roomID,
		SenderID:        &senderID,
		Content:         content,
		ContentType:     contentType,
		ParentMessageID: parentID,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("messageRepo.Create: %w", storeErr(err))
	}

	s.pub.Broadcast(EventReceiveMessage, messageEvent{
		MessageID:       msg.ID,
		ChatRoomID:      msg.RoomID,
		SenderID:        msg.SenderID,
		Content:         msg.Content,
		ContentType:     string(msg.ContentType),
		ParentMessageID: msg.ParentMessageID,
		CreatedAtUnix:   msg.CreatedAt.Unix(),
	})

	s.fanOut(ctx, msg, roomID, senderID)

	return msg, nil
}

// fanOut — «Message from X: ...» всем участникам, кроме отправителя.
// Каждое уведомление независимо: сбой одного не останавливает остальных.
func (s *MessageService) fanOut(ctx context.Context, msg *domain.Message, roomID, senderID int64) {
	sender, err := s.userRepo.Get(ctx, senderID)
	if err != nil {
		s.log.ErrorContext(ctx, "fan-out: sender lookup failed",
			slog.Int64("sender_id", senderID), slog.Any("error", err))
		return
	}

	members, err := s.memberRepo.ListUsersByRoom(ctx, roomID)
	if err != nil {
		s.log.ErrorContext(ctx, "fan-out: list members failed",
			slog.Int64("room_id", roomID), slog.Any("error", err))
		return
	}

	text := fmt.Sprintf("Message from %s: %s", sender.Username, msg.Content)
	src := NotificationSource{RoomID: &roomID, MessageID: &msg.ID}

	for _, m := range members {
		if m.ID == senderID {
			continue
		}
		if _, err := s.notifier.Create(ctx, m.ID, text, src); err != nil {
			s.log.ErrorContext(ctx, "fan-out: notify failed",
				slog.Int64("recipient_id", m.ID),
				slog.Int64("message_id", msg.ID),
				slog.Any("error", err))
		}
	}
}

func (s *MessageService) validateContent(content string, contentType domain.ContentType) error {
	if !contentType.Known() {
		return fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidContent, contentType)
	}
	if content == "" {
		return fmt.Errorf("%w: empty content", domain.ErrInvalidContent)
	}
	if len(content) > s.maxContentLen {
		return fmt.Errorf("%w: content exceeds %d characters", domain.ErrInvalidContent, s.maxContentLen)
	}
	if contentType == domain.ContentLink && !urlRe.MatchString(content) {
		return fmt.Errorf("%w: link content must be a URL", domain.ErrInvalidContent)
	}
	return nil
}

func (s *MessageService) ByID(ctx context.Context, id int64) (*domain.Message, error) {
	msg, err := s.messageRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, storeErr(err)
	}
	return msg, nil
}

func (s *MessageService) MessagesInRoom(ctx context.Context, roomID int64, limit int, cursor string) ([]domain.Message, string, error) {
	if _, err := s.roomRepo.Get(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", domain.ErrRoomNotFound
		}
		return nil, "", storeErr(err)
	}
	return s.messageRepo.ListByRoom(ctx, roomID, cursor, limit)
}

// Update правит контент/тип по месту. Повторная валидация не делается:
// редактирование — админская операция поверх уже принятого сообщения.
func (s *MessageService) Update(ctx context.Context, id int64, patch repository.MessagePatch) (*domain.Message, error) {
	if err := s.messageRepo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, storeErr(err)
	}
	return s.ByID(ctx, id)
}

func (s *MessageService) Remove(ctx context.Context, id int64) error {
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrMessageNotFound
		}
		return storeErr(err)
	}
	return nil
}
