package httpmw

import (
	"context"
	"net/http"
)

// PresenceToucher продлевает онлайн-статус пользователя.
type PresenceToucher interface {
	Heartbeat(ctx context.Context, userID int64)
}

// PresenceMiddleware трактует любой авторизованный запрос как признак
// жизни: продлеваем presence-TTL, не дожидаясь ws-pong.
func PresenceMiddleware(presence PresenceToucher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := UserIDFromCtx(r.Context()); userID != 0 {
				// best-effort: ошибки не прерывают запрос
				presence.Heartbeat(r.Context(), userID)
			}
			next.ServeHTTP(w, r)
		})
	}
}
