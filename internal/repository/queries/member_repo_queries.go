package queries

const (
	QueryAddMember = `
		INSERT INTO chat_room_members (room_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING joined_at;
	`
	// Идемпотентная вставка: уже существующая строка — не конфликт.
	QueryEnsureMember = `
		INSERT INTO chat_room_members (room_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, user_id) DO NOTHING;
	`
	QueryRemoveMember = `DELETE FROM chat_room_members WHERE room_id = $1 AND user_id = $2;`
	QueryGetMember    = `
		SELECT room_id, user_id, role, joined_at
		FROM chat_room_members
		WHERE room_id = $1 AND user_id = $2;
	`
	QueryMemberExists = `
		SELECT EXISTS(SELECT 1 FROM chat_room_members WHERE room_id = $1 AND user_id = $2);
	`
	QueryListMembers = `
		SELECT room_id, user_id, role, joined_at
		FROM chat_room_members
		WHERE room_id = $1
		ORDER BY joined_at ASC, user_id ASC;
	`
	QueryListMemberUsers = `
		SELECT u.id, u.username, u.email, u.is_online, u.created_at
		FROM chat_room_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.room_id = $1
		ORDER BY m.joined_at ASC, u.id ASC;
	`
	QueryFirstRoomForUser = `
		SELECT r.id, r.name, r.is_group, r.created_at
		FROM chat_room_members m
		JOIN chat_rooms r ON r.id = m.room_id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC
		LIMIT 1;
	`

	QueryAddBan = `
		INSERT INTO banned_members (room_id, user_id)
		VALUES ($1, $2)
		RETURNING banned_at;
	`
	QueryRemoveBan = `DELETE FROM banned_members WHERE room_id = $1 AND user_id = $2;`
	QueryBanExists = `
		SELECT EXISTS(SELECT 1 FROM banned_members WHERE room_id = $1 AND user_id = $2);
	`
	QueryListBans = `
		SELECT room_id, user_id, banned_at
		FROM banned_members
		WHERE room_id = $1
		ORDER BY banned_at ASC;
	`
)
