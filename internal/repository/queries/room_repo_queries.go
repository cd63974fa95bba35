package queries

const (
	QueryCreateRoom = `
		INSERT INTO chat_rooms (name, is_group, pair_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`
	// Вставка приватной комнаты; проигравший гонку по pair_key не получает строку.
	QueryCreatePrivateRoom = `
		INSERT INTO chat_rooms (is_group, pair_key)
		VALUES (FALSE, $1)
		ON CONFLICT (pair_key) DO NOTHING
		RETURNING id, created_at;
	`
	QueryGetRoom = `
		SELECT id, name, is_group, created_at
		FROM chat_rooms
		WHERE id = $1;
	`
	QueryGetRoomByPairKey = `
		SELECT id, name, is_group, created_at
		FROM chat_rooms
		WHERE pair_key = $1;
	`
	// Приватная комната с точным составом {a,b}: ровно два участника
	// и оба из пары (COUNT(*) = 2, не >= 2).
	QueryFindPrivateRoomByUsers = `
		SELECT r.id, r.name, r.is_group, r.created_at
		FROM chat_rooms r
		JOIN chat_room_members m ON m.room_id = r.id
		WHERE r.is_group = FALSE
		GROUP BY r.id
		HAVING COUNT(*) = 2
		   AND COUNT(*) FILTER (WHERE m.user_id IN ($1, $2)) = 2
		LIMIT 1;
	`
	QueryListRooms = `
		SELECT id, name, is_group, created_at
		FROM chat_rooms
		WHERE ($1::timestamptz IS NULL OR created_at < $1
		       OR (created_at = $1 AND id < $2))
		ORDER BY created_at DESC, id DESC
		LIMIT $3;
	`
	QueryGroupRoomsForUser = `
		SELECT r.id, r.name, r.is_group, r.created_at
		FROM chat_rooms r
		JOIN chat_room_members m ON m.room_id = r.id
		WHERE r.is_group = TRUE AND m.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC;
	`
	QueryUpdateRoomName = `UPDATE chat_rooms SET name = $2 WHERE id = $1;`
	QueryDeleteRoom     = `DELETE FROM chat_rooms WHERE id = $1;`
)
