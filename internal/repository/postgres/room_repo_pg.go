package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

// pairKey — канонический ключ пары для дедупликации приватных комнат.
func pairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

func (r *RoomRepo) CreateGroup(ctx context.Context, name string, creatorID int64) (*domain.ChatRoom, error) {
	room := &domain.ChatRoom{IsGroup: true}
	if name != "" {
		room.Name = &name
	}

	err := inTx(ctx, r.pool, func(q querier) error {
		if err := q.QueryRow(ctx, queries.QueryCreateRoom, room.Name, true, nil).
			Scan(&room.ID, &room.CreatedAt); err != nil {
			return mapPgError(err)
		}
		var joined time.Time
		if err := q.QueryRow(ctx, queries.QueryAddMember, room.ID, creatorID, domain.RoleAdmin).
			Scan(&joined); err != nil {
			return mapPgError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepo) FindOrCreatePrivate(ctx context.Context, userA, userB int64) (*domain.ChatRoom, bool, error) {
	// Быстрый путь: комната с точным составом {A,B} уже существует.
	existing, err := r.findPrivateByUsers(ctx, userA, userB)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	key := pairKey(userA, userB)
	room := &domain.ChatRoom{IsGroup: false}
	var created bool

	err = inTx(ctx, r.pool, func(q querier) error {
		err := q.QueryRow(ctx, queries.QueryCreatePrivateRoom, key).
			Scan(&room.ID, &room.CreatedAt)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Комната по pair_key уже есть: либо гонку выиграла параллельная
			// транзакция, либо один из пары когда-то вышел и точный поиск
			// по составу {A,B} её не увидел.
			got, gerr := scanRoom(q.QueryRow(ctx, queries.QueryGetRoomByPairKey, key))
			if gerr != nil {
				return gerr
			}
			*room = *got
		case err != nil:
			return mapPgError(err)
		default:
			created = true
		}

		// Membership восстанавливается идемпотентно в той же транзакции:
		// вышедший участник снова становится member.
		for _, uid := range []int64{userA, userB} {
			if _, err := q.Exec(ctx, queries.QueryEnsureMember, room.ID, uid, domain.RoleMember); err != nil {
				return mapPgError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return room, created, nil
}

func (r *RoomRepo) findPrivateByUsers(ctx context.Context, userA, userB int64) (*domain.ChatRoom, error) {
	room, err := scanRoom(r.pool.QueryRow(ctx, queries.QueryFindPrivateRoomByUsers, userA, userB))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepo) Get(ctx context.Context, id int64) (*domain.ChatRoom, error) {
	return scanRoom(r.pool.QueryRow(ctx, queries.QueryGetRoom, id))
}

func (r *RoomRepo) List(ctx context.Context, limit int, cursorStr string) ([]domain.ChatRoom, string, error) {
	cur, err := DecodeCursor(cursorStr)
	if err != nil {
		return nil, "", err
	}

	var createdAt, id any
	if cur != nil {
		createdAt = cur.CreatedAt
		id = cur.ID
	}

	rows, err := r.pool.Query(ctx, queries.QueryListRooms, createdAt, id, limit)
	if err != nil {
		return nil, "", mapPgError(err)
	}
	defer rows.Close()

	var rooms []domain.ChatRoom
	for rows.Next() {
		var rm domain.ChatRoom
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.IsGroup, &rm.CreatedAt); err != nil {
			return nil, "", mapPgError(err)
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, "", mapPgError(err)
	}

	var nextCursor string
	if len(rooms) == limit {
		last := rooms[len(rooms)-1]
		nextCursor, _ = EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rooms, nextCursor, nil
}

func (r *RoomRepo) GroupRoomsForUser(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	rows, err := r.pool.Query(ctx, queries.QueryGroupRoomsForUser, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var rooms []domain.ChatRoom
	for rows.Next() {
		var rm domain.ChatRoom
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.IsGroup, &rm.CreatedAt); err != nil {
			return nil, mapPgError(err)
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *RoomRepo) UpdateName(ctx context.Context, id int64, name string) error {
	tag, err := r.pool.Exec(ctx, queries.QueryUpdateRoomName, id, name)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, queries.QueryDeleteRoom, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRoom(row pgx.Row) (*domain.ChatRoom, error) {
	var rm domain.ChatRoom
	if err := row.Scan(&rm.ID, &rm.Name, &rm.IsGroup, &rm.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}
	return &rm, nil
}
