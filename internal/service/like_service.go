package service

import (
	"context"
	"errors"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, messageRepo: messageRepo, userRepo: userRepo}
}

// Like ставит лайк; повторный лайк того же пользователя — конфликт.
func (s *LikeService) Like(ctx context.Context, messageID, userID int64) (*domain.MessageLike, error) {
	ok, err := s.messageRepo.Exists(ctx, messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	l := &domain.MessageLike{MessageID: messageID, UserID: userID}
	if err := s.likeRepo.Add(ctx, l); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyLiked
		}
		return nil, storeErr(err)
	}
	return l, nil
}

func (s *LikeService) Unlike(ctx context.Context, messageID, userID int64) error {
	if err := s.likeRepo.Remove(ctx, messageID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrLikeNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (s *LikeService) Likes(ctx context.Context, messageID int64) ([]domain.MessageLike, error) {
	ok, err := s.messageRepo.Exists(ctx, messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	likes, err := s.likeRepo.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, storeErr(err)
	}
	return likes, nil
}
