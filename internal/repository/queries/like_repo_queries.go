package queries

const (
	QueryAddLike = `
		INSERT INTO message_likes (message_id, user_id)
		VALUES ($1, $2)
		RETURNING created_at;
	`
	QueryRemoveLike = `DELETE FROM message_likes WHERE message_id = $1 AND user_id = $2;`
	QueryListLikes  = `
		SELECT message_id, user_id, created_at
		FROM message_likes
		WHERE message_id = $1
		ORDER BY created_at ASC, user_id ASC;
	`
)
