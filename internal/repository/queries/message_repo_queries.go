package queries

const (
	QueryCreateMessage = `
		INSERT INTO messages (room_id, user_id, content, content_type, parent_message_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	QueryGetMessage = `
		SELECT id, room_id, user_id, content, content_type, parent_message_id, created_at
		FROM messages
		WHERE id = $1;
	`
	QueryMessageExists = `SELECT EXISTS(SELECT 1 FROM messages WHERE id = $1);`
	QueryListMessages  = `
		SELECT id, room_id, user_id, content, content_type, parent_message_id, created_at
		FROM messages
		WHERE room_id = $1
		  AND (
		    $2::timestamptz IS NULL
		    OR created_at < $2
		    OR (created_at = $2 AND id < $3)
		  )
		ORDER BY created_at DESC, id DESC
		LIMIT $4;
	`
	QueryDeleteMessage = `DELETE FROM messages WHERE id = $1;`
)
