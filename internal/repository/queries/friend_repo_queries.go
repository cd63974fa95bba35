package queries

const (
	QueryCreatePendingFriend = `
		INSERT INTO friends (sender_id, receiver_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, created_at;
	`
	QueryGetPendingFriend = `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friends
		WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending';
	`
	QueryPendingFriendExists = `
		SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		);
	`
	QueryAcceptFriend = `
		UPDATE friends SET status = 'accepted'
		WHERE id = $1 AND status = 'pending';
	`
	QueryDeleteFriend = `DELETE FROM friends WHERE id = $1;`
	// Принятые рёбра в обе стороны + пользователь на другом конце.
	QueryListAcceptedFriends = `
		SELECT f.id,
		       f.created_at,
		       u.id, u.username, u.email, u.is_online, u.created_at
		FROM friends f
		JOIN users u
		  ON u.id = CASE WHEN f.sender_id = $1 THEN f.receiver_id ELSE f.sender_id END
		WHERE (f.sender_id = $1 OR f.receiver_id = $1)
		  AND f.status = 'accepted'
		ORDER BY f.created_at DESC, f.id DESC;
	`
)
