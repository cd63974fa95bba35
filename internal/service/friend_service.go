package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
)

// FriendService — заявки в друзья: pending → accepted, reject удаляет
// ребро насовсем, так что заявку можно прислать заново.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   Notifier
	log        *slog.Logger
}

func NewFriendService(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	log *slog.Logger,
) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		log:        log,
	}
}

// SendRequest создаёт pending-заявку sender → receiver и уведомляет
// получателя. Вторая pending-заявка той же пары — конфликт.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID int64) (*domain.FriendEdge, error) {
	if senderID == receiverID {
		return nil, domain.ErrSelfRequest
	}

	sender, err := s.userRepo.Get(ctx, senderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	ok, err := s.userRepo.Exists(ctx, receiverID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	pending, err := s.friendRepo.PendingExists(ctx, senderID, receiverID)
	if err != nil {
		return nil, storeErr(err)
	}
	if pending {
		return nil, domain.ErrRequestPending
	}

	edge, err := s.friendRepo.CreatePending(ctx, senderID, receiverID)
	if err != nil {
		// гонка двух одинаковых заявок: проиграл — тот же конфликт
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrRequestPending
		}
		return nil, fmt.Errorf("friendRepo.CreatePending: %w", storeErr(err))
	}

	s.notify(ctx, receiverID,
		fmt.Sprintf("You have received a friend request from %s", sender.Username),
		NotificationSource{FriendID: &edge.ID})

	return edge, nil
}

// AcceptRequest принимает заявку sender → receiver; принимать может
// только получатель, поэтому пара параметров фиксирует направление.
func (s *FriendService) AcceptRequest(ctx context.Context, receiverID, senderID int64) error {
	edge, err := s.pendingEdge(ctx, senderID, receiverID)
	if err != nil {
		return err
	}

	if err := s.friendRepo.Accept(ctx, edge.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrRequestNotFound
		}
		return fmt.Errorf("friendRepo.Accept: %w", storeErr(err))
	}

	receiver, err := s.userRepo.Get(ctx, receiverID)
	if err != nil {
		s.log.ErrorContext(ctx, "accept: receiver lookup failed",
			slog.Int64("receiver_id", receiverID), slog.Any("error", err))
		return nil
	}
	s.notify(ctx, senderID,
		fmt.Sprintf("%s accepted your friend request", receiver.Username),
		NotificationSource{FriendID: &edge.ID})

	return nil
}

// RejectRequest удаляет pending-ребро и сообщает отправителю.
func (s *FriendService) RejectRequest(ctx context.Context, receiverID, senderID int64) error {
	edge, err := s.pendingEdge(ctx, senderID, receiverID)
	if err != nil {
		return err
	}

	if err := s.friendRepo.Delete(ctx, edge.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrRequestNotFound
		}
		return fmt.Errorf("friendRepo.Delete: %w", storeErr(err))
	}

	receiver, err := s.userRepo.Get(ctx, receiverID)
	if err != nil {
		s.log.ErrorContext(ctx, "reject: receiver lookup failed",
			slog.Int64("receiver_id", receiverID), slog.Any("error", err))
		return nil
	}
	s.notify(ctx, senderID,
		fmt.Sprintf("%s rejected your friend request", receiver.Username),
		NotificationSource{FriendID: &edge.ID})

	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]domain.FriendInfo, error) {
	friends, err := s.friendRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return friends, nil
}

func (s *FriendService) HasPendingRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	pending, err := s.friendRepo.PendingExists(ctx, senderID, receiverID)
	return pending, storeErr(err)
}

func (s *FriendService) pendingEdge(ctx context.Context, senderID, receiverID int64) (*domain.FriendEdge, error) {
	edge, err := s.friendRepo.GetPending(ctx, senderID, receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, storeErr(err)
	}
	return edge, nil
}

// notify — best effort: заявка уже в нужном состоянии, уведомление
// сверх того.
func (s *FriendService) notify(ctx context.Context, recipientID int64, text string, src NotificationSource) {
	if _, err := s.notifier.Create(ctx, recipientID, text, src); err != nil {
		s.log.ErrorContext(ctx, "friend notify failed",
			slog.Int64("recipient_id", recipientID), slog.Any("error", err))
	}
}
