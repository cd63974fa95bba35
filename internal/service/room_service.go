package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
)

// RoomService — жизненный цикл комнат, membership и баны.
// Бан ортогонален membership: Ban не выкидывает участника, «ban implies
// kick» собирается вызывающей стороной из Ban + RemoveMember.
type RoomService struct {
	roomRepo   repository.RoomRepository
	memberRepo repository.MemberRepository
	banRepo    repository.BanRepository
	userRepo   repository.UserRepository
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	memberRepo repository.MemberRepository,
	banRepo repository.BanRepository,
	userRepo repository.UserRepository,
) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		memberRepo: memberRepo,
		banRepo:    banRepo,
		userRepo:   userRepo,
	}
}

// CreateGroupRoom создаёт групповую комнату; создатель сразу становится
// админом (одна транзакция на стороне репозитория).
func (s *RoomService) CreateGroupRoom(ctx context.Context, name string, creatorID int64) (*domain.ChatRoom, error) {
	if err := s.requireUser(ctx, creatorID); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.CreateGroup(ctx, strings.TrimSpace(name), creatorID)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.CreateGroup: %w", storeErr(err))
	}
	return room, nil
}

// FindOrCreatePrivateRoom возвращает приватную комнату пары {a,b}.
// Параллельный вызов с той же парой получает ту же комнату, не дубль.
func (s *RoomService) FindOrCreatePrivateRoom(ctx context.Context, userA, userB int64) (*domain.ChatRoom, error) {
	if userA == userB {
		return nil, domain.ErrSelfRoom
	}
	for _, id := range []int64{userA, userB} {
		if err := s.requireUser(ctx, id); err != nil {
			return nil, err
		}
	}

	room, _, err := s.roomRepo.FindOrCreatePrivate(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.FindOrCreatePrivate: %w", storeErr(err))
	}
	return room, nil
}

func (s *RoomService) RoomByID(ctx context.Context, id int64) (*domain.ChatRoom, error) {
	room, err := s.roomRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, storeErr(err)
	}
	return room, nil
}

func (s *RoomService) ListRooms(ctx context.Context, limit int, cursor string) ([]domain.ChatRoom, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return s.roomRepo.List(ctx, limit, cursor)
}

func (s *RoomService) UpdateRoomName(ctx context.Context, id int64, name string) error {
	if err := s.roomRepo.UpdateName(ctx, id, strings.TrimSpace(name)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrRoomNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrRoomNotFound
		}
		return storeErr(err)
	}
	return nil
}

// AddMember добавляет пользователя в комнату. Забаненный не может
// получить membership-строку (инвариант бан ⊕ membership).
func (s *RoomService) AddMember(ctx context.Context, roomID, userID int64, role domain.RoomRole) (*domain.ChatRoomMember, error) {
	if role == "" {
		role = domain.RoleMember
	}
	if _, err := s.RoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	banned, err := s.banRepo.Exists(ctx, roomID, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if banned {
		return nil, domain.ErrAlreadyBanned
	}

	m := &domain.ChatRoomMember{RoomID: roomID, UserID: userID, Role: role}
	if err := s.memberRepo.Add(ctx, m); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("memberRepo.Add: %w", storeErr(err))
	}
	return m, nil
}

// RemoveMember: выйти самому можно всегда, удалить другого — только админ.
func (s *RoomService) RemoveMember(ctx context.Context, roomID, requestingUserID, targetUserID int64) error {
	if _, err := s.memberRepo.Get(ctx, roomID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrMemberNotFound
		}
		return storeErr(err)
	}

	if requestingUserID != targetUserID {
		requester, err := s.memberRepo.Get(ctx, roomID, requestingUserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ErrForbidden
			}
			return storeErr(err)
		}
		if requester.Role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
	}

	if err := s.memberRepo.Remove(ctx, roomID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrMemberNotFound
		}
		return storeErr(err)
	}
	return nil
}

// Ban помечает участника забаненным. Membership-строка остаётся:
// кто хочет «ban + kick», зовёт RemoveMember следом.
func (s *RoomService) Ban(ctx context.Context, roomID, targetUserID, requestingUserID int64) (*domain.BannedMember, error) {
	if err := s.requireUser(ctx, targetUserID); err != nil {
		return nil, err
	}
	if _, err := s.RoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, roomID, requestingUserID); err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, roomID, targetUserID); err != nil {
		return nil, err
	}

	banned, err := s.banRepo.Exists(ctx, roomID, targetUserID)
	if err != nil {
		return nil, storeErr(err)
	}
	if banned {
		return nil, domain.ErrAlreadyBanned
	}

	b := &domain.BannedMember{RoomID: roomID, UserID: targetUserID}
	if err := s.banRepo.Add(ctx, b); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyBanned
		}
		return nil, fmt.Errorf("banRepo.Add: %w", storeErr(err))
	}
	return b, nil
}

func (s *RoomService) Unban(ctx context.Context, roomID, targetUserID, requestingUserID int64) error {
	if err := s.requireUser(ctx, targetUserID); err != nil {
		return err
	}
	if _, err := s.RoomByID(ctx, roomID); err != nil {
		return err
	}
	if err := s.requireMember(ctx, roomID, requestingUserID); err != nil {
		return err
	}

	if err := s.banRepo.Remove(ctx, roomID, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrBanNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (s *RoomService) IsBanned(ctx context.Context, roomID, userID int64) (bool, error) {
	banned, err := s.banRepo.Exists(ctx, roomID, userID)
	return banned, storeErr(err)
}

// ListMembers возвращает участников комнаты; пустая комната — пустой
// срез, а не ошибка.
func (s *RoomService) ListMembers(ctx context.Context, roomID int64) ([]domain.User, error) {
	if _, err := s.RoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	users, err := s.memberRepo.ListUsersByRoom(ctx, roomID)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

// CurrentRoomForUser — комната, где пользователь состоит сейчас;
// ErrRoomNotFound, если ни в одной.
func (s *RoomService) CurrentRoomForUser(ctx context.Context, userID int64) (*domain.ChatRoom, error) {
	room, err := s.memberRepo.FirstRoomForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, storeErr(err)
	}
	return room, nil
}

func (s *RoomService) GroupRoomsForUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	rooms, err := s.roomRepo.GroupRoomsForUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

func (s *RoomService) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *RoomService) requireMember(ctx context.Context, roomID, userID int64) error {
	ok, err := s.memberRepo.Exists(ctx, roomID, userID)
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return domain.ErrNotMember
	}
	return nil
}

// storeErr прячет транспортные ошибки стора за ErrUnavailable,
// остальное отдаёт как есть.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrUnavailable) {
		return domain.ErrUnavailable
	}
	return err
}
