package queries

const (
	QueryGetUser = `
		SELECT id, username, email, is_online, created_at
		FROM users
		WHERE id = $1;
	`
	QueryUserExists = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1);`
	QuerySearchUsers = `
		SELECT id, username, email, is_online, created_at
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username ASC
		LIMIT $2;
	`
	QuerySetUserOnline = `UPDATE users SET is_online = $2 WHERE id = $1;`
)
