package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cwrk-planet/chat-service/internal/service"
)

// Presence — что ws-слою нужно от presence-сервиса.
type Presence interface {
	Connected(ctx context.Context, userID int64)
	Heartbeat(ctx context.Context, userID int64)
	Disconnected(ctx context.Context, userID int64)
}

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	presence Presence

	pingEvery time.Duration
}

func NewServer(hub *Hub, presence Presence) *Server {
	return &Server{
		hub:      hub,
		presence: presence,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws?access_token=...&user_id=...
// Соединение сразу подписано на user:<id>; admin:<id> — по команде
// subscribeToAdminNotifications.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accessToken := strings.TrimSpace(q.Get("access_token"))
	userIDStr := strings.TrimSpace(q.Get("user_id"))
	if accessToken == "" {
		http.Error(w, "missing access_token", http.StatusUnauthorized)
		return
	}
	uid, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || uid <= 0 {
		http.Error(w, "invalid user_id", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	c := newWsConn(conn, uid)
	s.hub.Add(c)
	s.hub.Subscribe(c, service.UserTopic(uid))

	s.presence.Connected(r.Context(), uid)

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	s.hub.Remove(c)
	s.presence.Disconnected(context.WithoutCancel(r.Context()), uid)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "user", uid, "err", err)
	}
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		s.presence.Heartbeat(ctx, c.userID)
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeSubscribeAdmin:
			s.hub.Subscribe(c, service.AdminTopic(c.userID))
			_ = c.Send(Message{
				Type:    msg.Type,
				Payload: AckPayload{Command: msg.Type, OK: true},
			})
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	id     string
	userID int64
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, userID int64) *wsConn {
	return &wsConn{
		conn:   c,
		id:     uuid.NewString(),
		userID: userID,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) ID() string    { return c.id }
func (c *wsConn) UserID() int64 { return c.userID }
