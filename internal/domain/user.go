package domain

import "time"

// User — принадлежит auth-service; здесь только проекция,
// credential-поля остаются на той стороне.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	IsOnline  bool      `db:"is_online"`
	CreatedAt time.Time `db:"created_at"`
}
