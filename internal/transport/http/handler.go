package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
	"github.com/cwrk-planet/chat-service/internal/repository/postgres"
	"github.com/cwrk-planet/chat-service/internal/service"
	httpmw "github.com/cwrk-planet/chat-service/internal/transport/http/middleware"
)

type Handler struct {
	roomSvc         *service.RoomService
	messageSvc      *service.MessageService
	friendSvc       *service.FriendService
	notificationSvc *service.NotificationService
	likeSvc         *service.LikeService
	presenceSvc     *service.PresenceService
	userRepo        repository.UserRepository
}

func NewHandler(
	room *service.RoomService,
	message *service.MessageService,
	friend *service.FriendService,
	notification *service.NotificationService,
	like *service.LikeService,
	presence *service.PresenceService,
	users repository.UserRepository,
) *Handler {
	return &Handler{
		roomSvc:         room,
		messageSvc:      message,
		friendSvc:       friend,
		notificationSvc: notification,
		likeSvc:         like,
		presenceSvc:     presence,
		userRepo:        users,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr переводит доменные sentinel-ошибки в HTTP-статусы.
func writeErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrParentNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrBanNotFound),
		errors.Is(err, domain.ErrLikeNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrAlreadyBanned),
		errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrRequestPending):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotMember):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSelfRequest),
		errors.Is(err, domain.ErrSelfRoom),
		errors.Is(err, domain.ErrInvalidContent),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, postgres.ErrInvalidCursor):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("handler."+op+":", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func roomItem(rm *domain.ChatRoom) RoomItem {
	return RoomItem{ID: rm.ID, Name: rm.Name, IsGroup: rm.IsGroup, CreatedAt: rm.CreatedAt}
}

func messageItem(m *domain.Message) MessageItem {
	return MessageItem{
		ID:              m.ID,
		ChatRoomID:      m.RoomID,
		SenderID:        m.SenderID,
		Content:         m.Content,
		ContentType:     string(m.ContentType),
		ParentMessageID: m.ParentMessageID,
		CreatedAt:       m.CreatedAt,
	}
}

func userItem(u domain.User) UserItem {
	return UserItem{ID: u.ID, Username: u.Username, Email: u.Email, IsOnline: u.IsOnline}
}

// --- rooms ---

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	room, err := h.roomSvc.CreateGroupRoom(r.Context(), req.Name, httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "CreateRoom", err)
		return
	}

	writeJSON(w, http.StatusCreated, roomItem(room))
}

// POST /rooms/private
func (h *Handler) PrivateRoom(w http.ResponseWriter, r *http.Request) {
	var req PrivateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	room, err := h.roomSvc.FindOrCreatePrivateRoom(r.Context(), httpmw.UserIDFromCtx(r.Context()), req.PeerID)
	if err != nil {
		writeErr(w, "PrivateRoom", err)
		return
	}

	writeJSON(w, http.StatusOK, roomItem(room))
}

// GET /rooms?limit=&cursor=
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	rooms, next, err := h.roomSvc.ListRooms(r.Context(), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeErr(w, "ListRooms", err)
		return
	}
	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(rooms)), NextCursor: next}
	for _, rm := range rooms {
		resp.Items = append(resp.Items, roomItem(&rm))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	room, err := h.roomSvc.RoomByID(r.Context(), id)
	if err != nil {
		writeErr(w, "GetRoom", err)
		return
	}

	writeJSON(w, http.StatusOK, roomItem(room))
}

// PATCH /rooms/{id}
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	var req UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if err := h.roomSvc.UpdateRoomName(r.Context(), id, req.Name); err != nil {
		writeErr(w, "UpdateRoom", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DELETE /rooms/{id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	if err := h.roomSvc.DeleteRoom(r.Context(), id); err != nil {
		writeErr(w, "DeleteRoom", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- members ---

// POST /rooms/{id}/members
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	m, err := h.roomSvc.AddMember(r.Context(), roomID, req.UserID, domain.RoomRole(req.Role))
	if err != nil {
		writeErr(w, "AddMember", err)
		return
	}

	writeJSON(w, http.StatusCreated, MemberItem{
		RoomID:   m.RoomID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	})
}

// DELETE /rooms/{id}/members/{userID}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	targetID, ok := pathID(r, "userID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	err := h.roomSvc.RemoveMember(r.Context(), roomID, httpmw.UserIDFromCtx(r.Context()), targetID)
	if err != nil {
		writeErr(w, "RemoveMember", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// GET /rooms/{id}/members
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	users, err := h.roomSvc.ListMembers(r.Context(), roomID)
	if err != nil {
		writeErr(w, "ListMembers", err)
		return
	}

	resp := UsersResponse{Items: make([]UserItem, 0, len(users))}
	for _, u := range users {
		resp.Items = append(resp.Items, userItem(u))
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- bans ---

// POST /rooms/{id}/bans
func (h *Handler) BanMember(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	var req BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	b, err := h.roomSvc.Ban(r.Context(), roomID, req.UserID, httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "BanMember", err)
		return
	}

	writeJSON(w, http.StatusCreated, BanItem{RoomID: b.RoomID, UserID: b.UserID, BannedAt: b.BannedAt})
}

// DELETE /rooms/{id}/bans/{userID}
func (h *Handler) UnbanMember(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	targetID, ok := pathID(r, "userID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	err := h.roomSvc.Unban(r.Context(), roomID, targetID, httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "UnbanMember", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "unbanned"})
}

// --- messages ---

// POST /rooms/{id}/messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	msg, err := h.messageSvc.Create(r.Context(), roomID, httpmw.UserIDFromCtx(r.Context()),
		req.Content, domain.ContentType(req.ContentType), req.ParentMessageID)
	if err != nil {
		writeErr(w, "CreateMessage", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageItem(msg))
}

// GET /rooms/{id}/messages?limit=&cursor=
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid room id"})
		return
	}
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	msgs, next, err := h.messageSvc.MessagesInRoom(r.Context(), roomID, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeErr(w, "ListMessages", err)
		return
	}
	resp := MessagesResponse{Items: make([]MessageItem, 0, len(msgs)), NextCursor: next}
	for _, m := range msgs {
		resp.Items = append(resp.Items, messageItem(&m))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /messages/{id}
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid message id"})
		return
	}
	msg, err := h.messageSvc.ByID(r.Context(), id)
	if err != nil {
		writeErr(w, "GetMessage", err)
		return
	}

	writeJSON(w, http.StatusOK, messageItem(msg))
}

// PATCH /messages/{id}
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid message id"})
		return
	}
	var req UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	patch := repository.MessagePatch{Content: req.Content}
	if req.ContentType != nil {
		ct := domain.ContentType(*req.ContentType)
		patch.ContentType = &ct
	}
	msg, err := h.messageSvc.Update(r.Context(), id, patch)
	if err != nil {
		writeErr(w, "UpdateMessage", err)
		return
	}

	writeJSON(w, http.StatusOK, messageItem(msg))
}

// DELETE /messages/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid message id"})
		return
	}
	if err := h.messageSvc.Remove(r.Context(), id); err != nil {
		writeErr(w, "DeleteMessage", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- likes ---

// POST /messages/{id}/likes
func (h *Handler) LikeMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid message id"})
		return
	}
	l, err := h.likeSvc.Like(r.Context(), id, httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "LikeMessage", err)
		return
	}

	writeJSON(w, http.StatusCreated, LikeItem{MessageID: l.MessageID, UserID: l.UserID, CreatedAt: l.CreatedAt})
}

// DELETE /messages/{id}/likes
func (h *Handler) UnlikeMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid message id"})
		return
	}
	if err := h.likeSvc.Unlike(r.Context(), id, httpmw.UserIDFromCtx(r.Context())); err != nil {
		writeErr(w, "UnlikeMessage", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "unliked"})
}

// GET /messages/{id}/likes
func (h *Handler) ListLikes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid message id"})
		return
	}
	likes, err := h.likeSvc.Likes(r.Context(), id)
	if err != nil {
		writeErr(w, "ListLikes", err)
		return
	}

	resp := LikesResponse{Items: make([]LikeItem, 0, len(likes))}
	for _, l := range likes {
		resp.Items = append(resp.Items, LikeItem{MessageID: l.MessageID, UserID: l.UserID, CreatedAt: l.CreatedAt})
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- friends ---

// POST /friends/requests
func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req FriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	edge, err := h.friendSvc.SendRequest(r.Context(), httpmw.UserIDFromCtx(r.Context()), req.ReceiverID)
	if err != nil {
		writeErr(w, "SendFriendRequest", err)
		return
	}

	writeJSON(w, http.StatusCreated, FriendEdgeItem{
		ID:         edge.ID,
		SenderID:   edge.SenderID,
		ReceiverID: edge.ReceiverID,
		Status:     string(edge.Status),
		CreatedAt:  edge.CreatedAt,
	})
}

// POST /friends/requests/{senderID}/accept
func (h *Handler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	senderID, ok := pathID(r, "senderID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid sender id"})
		return
	}
	if err := h.friendSvc.AcceptRequest(r.Context(), httpmw.UserIDFromCtx(r.Context()), senderID); err != nil {
		writeErr(w, "AcceptFriendRequest", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// POST /friends/requests/{senderID}/reject
func (h *Handler) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	senderID, ok := pathID(r, "senderID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid sender id"})
		return
	}
	if err := h.friendSvc.RejectRequest(r.Context(), httpmw.UserIDFromCtx(r.Context()), senderID); err != nil {
		writeErr(w, "RejectFriendRequest", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// GET /friends
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.friendSvc.ListFriends(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "ListFriends", err)
		return
	}

	resp := FriendsResponse{Items: make([]FriendItem, 0, len(friends))}
	for _, f := range friends {
		resp.Items = append(resp.Items, FriendItem{EdgeID: f.EdgeID, User: userItem(f.User), Since: f.Since})
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- notifications ---

// GET /notifications
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.notificationSvc.List(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "ListNotifications", err)
		return
	}

	resp := NotificationsResponse{Items: make([]NotificationItem, 0, len(list))}
	for _, n := range list {
		resp.Items = append(resp.Items, NotificationItem{
			ID:         n.ID,
			Message:    n.Message,
			ChatRoomID: n.RoomID,
			MessageID:  n.MessageID,
			FriendID:   n.FriendID,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /notifications/{id}/read
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid notification id"})
		return
	}
	if err := h.notificationSvc.MarkAsRead(r.Context(), id); err != nil {
		writeErr(w, "MarkNotificationRead", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// POST /notifications/read-from/{senderID}
func (h *Handler) MarkAllReadFromSender(w http.ResponseWriter, r *http.Request) {
	senderID, ok := pathID(r, "senderID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid sender id"})
		return
	}

	n, err := h.notificationSvc.MarkAllAsReadFromSender(r.Context(), httpmw.UserIDFromCtx(r.Context()), senderID)
	if err != nil {
		writeErr(w, "MarkAllReadFromSender", err)
		return
	}

	writeJSON(w, http.StatusOK, MarkedResponse{Marked: n})
}

// DELETE /notifications/{id}
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid notification id"})
		return
	}
	if err := h.notificationSvc.Remove(r.Context(), id); err != nil {
		writeErr(w, "DeleteNotification", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /notifications/unread-counts
func (h *Handler) UnreadCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.notificationSvc.UnreadCountsBySender(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "UnreadCounts", err)
		return
	}

	resp := UnreadCountsResponse{Items: make([]UnreadCountItem, 0, len(counts))}
	for _, c := range counts {
		resp.Items = append(resp.Items, UnreadCountItem{SenderID: c.SenderID, Count: c.Count})
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- users ---

// GET /users/search?username=&limit=
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	users, err := h.userRepo.Search(r.Context(), username, limit)
	if err != nil {
		writeErr(w, "SearchUsers", err)
		return
	}

	resp := UsersResponse{Items: make([]UserItem, 0, len(users))}
	for _, u := range users {
		resp.Items = append(resp.Items, userItem(u))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /users/{id}/online
func (h *Handler) UserOnline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}
	online, err := h.presenceSvc.IsOnline(r.Context(), id)
	if err != nil {
		writeErr(w, "UserOnline", err)
		return
	}

	writeJSON(w, http.StatusOK, OnlineResponse{UserID: id, Online: online})
}

// GET /users/me/room — комната, где пользователь состоит сейчас.
func (h *Handler) MyCurrentRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomSvc.CurrentRoomForUser(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "MyCurrentRoom", err)
		return
	}

	writeJSON(w, http.StatusOK, roomItem(room))
}

// GET /users/me/group-rooms
func (h *Handler) MyGroupRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomSvc.GroupRoomsForUser(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeErr(w, "MyGroupRooms", err)
		return
	}

	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(rooms))}
	for _, rm := range rooms {
		resp.Items = append(resp.Items, roomItem(&rm))
	}

	writeJSON(w, http.StatusOK, resp)
}
