package queries

const (
	QueryCreateNotification = `
		INSERT INTO notifications (user_id, room_id, message_id, friend_id, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	QueryGetNotification = `
		SELECT id, user_id, room_id, message_id, friend_id, message, is_read, created_at
		FROM notifications
		WHERE id = $1;
	`
	QueryListNotifications = `
		SELECT id, user_id, room_id, message_id, friend_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC;
	`
	// Без фильтра по is_read: повторный mark read — не ошибка.
	QueryMarkNotificationRead = `UPDATE notifications SET is_read = TRUE WHERE id = $1;`
	QueryMarkAllReadFromSender = `
		UPDATE notifications n SET is_read = TRUE
		FROM messages m
		WHERE m.id = n.message_id
		  AND n.user_id = $1
		  AND m.user_id = $2
		  AND n.is_read = FALSE;
	`
	QueryDeleteNotification = `DELETE FROM notifications WHERE id = $1;`
	// Группировка непрочитанных по автору сообщения-источника.
	// Уведомления без message_id (friend/admin) сюда не попадают.
	QueryUnreadCountsBySender = `
		SELECT m.user_id AS sender_id, COUNT(*) AS unread
		FROM notifications n
		JOIN messages m ON m.id = n.message_id
		WHERE n.user_id = $1
		  AND n.is_read = FALSE
		  AND m.user_id IS NOT NULL
		GROUP BY m.user_id
		ORDER BY sender_id;
	`
)
