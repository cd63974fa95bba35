package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"

	httpmw "github.com/cwrk-planet/chat-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/chat-service/internal/transport/ws"
)

func NewRouter(h *Handler, presence httpmw.PresenceToucher, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint
	r.Get("/ws", wsServer.HandleWS)

	// Все маршруты требуют access_token и user_id
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware)
		pr.Use(httpmw.PresenceMiddleware(presence))
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/rooms", func(rm chi.Router) {
			rm.Post("/", h.CreateRoom)
			rm.Post("/private", h.PrivateRoom)
			rm.Get("/", h.ListRooms)

			rm.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", h.GetRoom)
				rr.Patch("/", h.UpdateRoom)
				rr.Delete("/", h.DeleteRoom)

				rr.Get("/members", h.ListMembers)
				rr.Post("/members", h.AddMember)
				rr.Delete("/members/{userID}", h.RemoveMember)

				rr.Post("/bans", h.BanMember)
				rr.Delete("/bans/{userID}", h.UnbanMember)

				rr.Get("/messages", h.ListMessages)
				rr.Post("/messages", h.CreateMessage)
			})
		})

		pr.Route("/messages/{id}", func(mr chi.Router) {
			mr.Get("/", h.GetMessage)
			mr.Patch("/", h.UpdateMessage)
			mr.Delete("/", h.DeleteMessage)

			mr.Get("/likes", h.ListLikes)
			mr.Post("/likes", h.LikeMessage)
			mr.Delete("/likes", h.UnlikeMessage)
		})

		pr.Route("/friends", func(fr chi.Router) {
			fr.Get("/", h.ListFriends)
			fr.Post("/requests", h.SendFriendRequest)
			fr.Post("/requests/{senderID}/accept", h.AcceptFriendRequest)
			fr.Post("/requests/{senderID}/reject", h.RejectFriendRequest)
		})

		pr.Route("/notifications", func(nr chi.Router) {
			nr.Get("/", h.ListNotifications)
			nr.Get("/unread-counts", h.UnreadCounts)
			nr.Post("/{id}/read", h.MarkNotificationRead)
			nr.Post("/read-from/{senderID}", h.MarkAllReadFromSender)
			nr.Delete("/{id}", h.DeleteNotification)
		})

		pr.Route("/users", func(ur chi.Router) {
			ur.Get("/search", h.SearchUsers)
			ur.Get("/me/room", h.MyCurrentRoom)
			ur.Get("/me/group-rooms", h.MyGroupRooms)
			ur.Get("/{id}/online", h.UserOnline)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
