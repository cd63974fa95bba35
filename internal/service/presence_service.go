package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cwrk-planet/chat-service/internal/repository"
)

const defaultPresenceTTL = 60 * time.Second

// PresenceService держит онлайн-статус в redis с TTL и дублирует флаг
// в users.is_online. Redis опционален: без него остаётся только флаг
// в базе.
type PresenceService struct {
	rdb      *redis.Client
	userRepo repository.UserRepository
	ttl      time.Duration
	log      *slog.Logger
}

func NewPresenceService(rdb *redis.Client, userRepo repository.UserRepository, ttl time.Duration, log *slog.Logger) *PresenceService {
	if ttl <= 0 {
		ttl = defaultPresenceTTL
	}
	return &PresenceService{rdb: rdb, userRepo: userRepo, ttl: ttl, log: log}
}

func presenceKey(userID int64) string {
	return fmt.Sprintf("presence:user:%d", userID)
}

// Connected отмечает пользователя онлайн.
func (s *PresenceService) Connected(ctx context.Context, userID int64) {
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, presenceKey(userID), "1", s.ttl).Err(); err != nil {
			s.log.WarnContext(ctx, "presence set failed",
				slog.Int64("user_id", userID), slog.Any("error", err))
		}
	}
	if err := s.userRepo.SetOnline(ctx, userID, true); err != nil {
		s.log.WarnContext(ctx, "set online failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
}

// Heartbeat продлевает TTL. Зовётся из ws-слоя на каждый pong.
func (s *PresenceService) Heartbeat(ctx context.Context, userID int64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Expire(ctx, presenceKey(userID), s.ttl).Err(); err != nil {
		s.log.WarnContext(ctx, "presence refresh failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
}

// Disconnected снимает онлайн-статус.
func (s *PresenceService) Disconnected(ctx context.Context, userID int64) {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, presenceKey(userID)).Err(); err != nil {
			s.log.WarnContext(ctx, "presence del failed",
				slog.Int64("user_id", userID), slog.Any("error", err))
		}
	}
	if err := s.userRepo.SetOnline(ctx, userID, false); err != nil {
		s.log.WarnContext(ctx, "set offline failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
}

// IsOnline — сначала redis (живой TTL-ключ), иначе флаг из базы.
func (s *PresenceService) IsOnline(ctx context.Context, userID int64) (bool, error) {
	if s.rdb != nil {
		n, err := s.rdb.Exists(ctx, presenceKey(userID)).Result()
		if err == nil {
			return n > 0, nil
		}
		s.log.WarnContext(ctx, "presence check failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}

	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return false, storeErr(err)
	}
	return u.IsOnline, nil
}
