package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	ID() string
	UserID() int64
}

// Hub — реестр соединений по топикам. Одно соединение может состоять
// в нескольких топиках (свой user:<id> плюс admin:<id> по подписке).
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[Conn]struct{} // topic -> set of connections
	conns  map[Conn]map[string]struct{} // conn -> its topics
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[Conn]struct{}),
		conns:  make(map[Conn]map[string]struct{}),
	}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; !ok {
		h.conns[c] = make(map[string]struct{})
	}
}

// Subscribe включает соединение в топик.
func (h *Hub) Subscribe(c Conn, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ts, ok := h.topics[topic]
	if !ok {
		ts = make(map[Conn]struct{})
		h.topics[topic] = ts
	}
	ts[c] = struct{}{}

	subs, ok := h.conns[c]
	if !ok {
		subs = make(map[string]struct{})
		h.conns[c] = subs
	}
	subs[topic] = struct{}{}
}

// Remove выкидывает соединение из всех топиков.
func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic := range h.conns[c] {
		if ts, ok := h.topics[topic]; ok {
			delete(ts, c)
			if len(ts) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	delete(h.conns, c)
}

// Publish шлёт событие подписчикам топика.
func (h *Hub) Publish(topic, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.topics[topic] {
		_ = c.Send(Message{Type: event, Payload: payload}) // best-effort
	}
}

// Broadcast шлёт событие всем подключённым.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns {
		_ = c.Send(Message{Type: event, Payload: payload}) // best-effort
	}
}
