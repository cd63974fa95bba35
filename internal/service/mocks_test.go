package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cwrk-planet/chat-service/internal/domain"
	"github.com/cwrk-planet/chat-service/internal/repository"
)

// memStore — in-memory реализация всех репозиториев для тестов сервисов.
type memStore struct {
	mu  sync.Mutex
	seq int64

	users         map[int64]domain.User
	rooms         map[int64]*domain.ChatRoom
	pairKeys      map[string]int64
	members       map[[2]int64]*domain.ChatRoomMember // {roomID,userID}
	bans          map[[2]int64]*domain.BannedMember
	messages      map[int64]*domain.Message
	friends       map[int64]*domain.FriendEdge
	notifications map[int64]*domain.Notification
	likes         map[[2]int64]*domain.MessageLike // {messageID,userID}
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[int64]domain.User),
		rooms:         make(map[int64]*domain.ChatRoom),
		pairKeys:      make(map[string]int64),
		members:       make(map[[2]int64]*domain.ChatRoomMember),
		bans:          make(map[[2]int64]*domain.BannedMember),
		messages:      make(map[int64]*domain.Message),
		friends:       make(map[int64]*domain.FriendEdge),
		notifications: make(map[int64]*domain.Notification),
		likes:         make(map[[2]int64]*domain.MessageLike),
	}
}

func (s *memStore) addUser(id int64, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = domain.User{ID: id, Username: username, Email: username + "@test.local", CreatedAt: time.Now()}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

// --- RoomRepository ---

func (s *memStore) CreateGroup(_ context.Context, name string, creatorID int64) (*domain.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := &domain.ChatRoom{ID: s.nextID(), IsGroup: true, CreatedAt: time.Now()}
	if name != "" {
		room.Name = &name
	}
	s.rooms[room.ID] = room
	s.members[[2]int64{room.ID, creatorID}] = &domain.ChatRoomMember{
		RoomID: room.ID, UserID: creatorID, Role: domain.RoleAdmin, JoinedAt: time.Now(),
	}
	return room, nil
}

func (s *memStore) FindOrCreatePrivate(_ context.Context, userA, userB int64) (*domain.ChatRoom, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, b := userA, userB
	if a > b {
		a, b = b, a
	}
	key := fmt.Sprintf("%d:%d", a, b)
	room, created := (*domain.ChatRoom)(nil), false
	if id, ok := s.pairKeys[key]; ok {
		room = s.rooms[id]
	} else {
		room = &domain.ChatRoom{ID: s.nextID(), IsGroup: false, CreatedAt: time.Now()}
		s.rooms[room.ID] = room
		s.pairKeys[key] = room.ID
		created = true
	}
	// membership восстанавливается идемпотентно, как ON CONFLICT DO NOTHING
	for _, uid := range []int64{userA, userB} {
		mk := [2]int64{room.ID, uid}
		if _, ok := s.members[mk]; !ok {
			s.members[mk] = &domain.ChatRoomMember{
				RoomID: room.ID, UserID: uid, Role: domain.RoleMember, JoinedAt: time.Now(),
			}
		}
	}
	return room, created, nil
}

func (s *memStore) Get(_ context.Context, id int64) (*domain.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return room, nil
}

func (s *memStore) List(_ context.Context, limit int, _ string) ([]domain.ChatRoom, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatRoom, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, "", nil
}

func (s *memStore) GroupRoomsForUser(_ context.Context, userID int64) ([]domain.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ChatRoom
	for key, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if r, ok := s.rooms[key[0]]; ok && r.IsGroup {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memStore) UpdateName(_ context.Context, id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return repository.ErrNotFound
	}
	room.Name = &name
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rooms, id)
	return nil
}

// --- MemberRepository (через обёртку: Get конфликтует с RoomRepository.Get) ---

type memMemberRepo struct{ s *memStore }

func (r memMemberRepo) Add(_ context.Context, m *domain.ChatRoomMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{m.RoomID, m.UserID}
	if _, ok := r.s.members[key]; ok {
		return repository.ErrAlreadyExists
	}
	m.JoinedAt = time.Now()
	cp := *m
	r.s.members[key] = &cp
	return nil
}

func (r memMemberRepo) Remove(_ context.Context, roomID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{roomID, userID}
	if _, ok := r.s.members[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.members, key)
	return nil
}

func (r memMemberRepo) Get(_ context.Context, roomID, userID int64) (*domain.ChatRoomMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[[2]int64{roomID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (r memMemberRepo) Exists(_ context.Context, roomID, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.members[[2]int64{roomID, userID}]
	return ok, nil
}

func (r memMemberRepo) ListByRoom(_ context.Context, roomID int64) ([]domain.ChatRoomMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.ChatRoomMember
	for key, m := range r.s.members {
		if key[0] == roomID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r memMemberRepo) ListUsersByRoom(_ context.Context, roomID int64) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.User
	for key := range r.s.members {
		if key[0] != roomID {
			continue
		}
		if u, ok := r.s.users[key[1]]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memMemberRepo) FirstRoomForUser(_ context.Context, userID int64) (*domain.ChatRoom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *domain.ChatRoom
	var bestJoined time.Time
	for key, m := range r.s.members {
		if m.UserID != userID {
			continue
		}
		if room, ok := r.s.rooms[key[0]]; ok && (best == nil || m.JoinedAt.After(bestJoined)) {
			best, bestJoined = room, m.JoinedAt
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

// --- BanRepository ---

type memBanRepo struct{ s *memStore }

func (r memBanRepo) Add(_ context.Context, b *domain.BannedMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{b.RoomID, b.UserID}
	if _, ok := r.s.bans[key]; ok {
		return repository.ErrAlreadyExists
	}
	b.BannedAt = time.Now()
	cp := *b
	r.s.bans[key] = &cp
	return nil
}

func (r memBanRepo) Remove(_ context.Context, roomID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{roomID, userID}
	if _, ok := r.s.bans[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bans, key)
	return nil
}

func (r memBanRepo) Exists(_ context.Context, roomID, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.bans[[2]int64{roomID, userID}]
	return ok, nil
}

func (r memBanRepo) ListByRoom(_ context.Context, roomID int64) ([]domain.BannedMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.BannedMember
	for key, b := range r.s.bans {
		if key[0] == roomID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// --- MessageRepository ---

type memMessageRepo struct{ s *memStore }

func (r memMessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.nextID()
	m.CreatedAt = time.Now()
	cp := *m
	r.s.messages[m.ID] = &cp
	return nil
}

func (r memMessageRepo) Get(_ context.Context, id int64) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (r memMessageRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.messages[id]
	return ok, nil
}

func (r memMessageRepo) ListByRoom(_ context.Context, roomID int64, _ string, limit int) ([]domain.Message, string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Message
	for _, m := range r.s.messages {
		if m.RoomID != nil && *m.RoomID == roomID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, "", nil
}

func (r memMessageRepo) Update(_ context.Context, id int64, patch repository.MessagePatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Content != nil {
		m.Content = *patch.Content
	}
	if patch.ContentType != nil {
		m.ContentType = *patch.ContentType
	}
	return nil
}

func (r memMessageRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.messages, id)
	return nil
}

// --- FriendRepository ---

type memFriendRepo struct{ s *memStore }

func (r memFriendRepo) CreatePending(_ context.Context, senderID, receiverID int64) (*domain.FriendEdge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.friends {
		if e.SenderID == senderID && e.ReceiverID == receiverID && e.Status == domain.FriendPending {
			return nil, repository.ErrAlreadyExists
		}
	}
	edge := &domain.FriendEdge{
		ID:         r.s.nextID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.FriendPending,
		CreatedAt:  time.Now(),
	}
	r.s.friends[edge.ID] = edge
	return edge, nil
}

func (r memFriendRepo) GetPending(_ context.Context, senderID, receiverID int64) (*domain.FriendEdge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.friends {
		if e.SenderID == senderID && e.ReceiverID == receiverID && e.Status == domain.FriendPending {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memFriendRepo) PendingExists(ctx context.Context, senderID, receiverID int64) (bool, error) {
	_, err := r.GetPending(ctx, senderID, receiverID)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r memFriendRepo) Accept(_ context.Context, edgeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.friends[edgeID]
	if !ok || e.Status != domain.FriendPending {
		return repository.ErrNotFound
	}
	e.Status = domain.FriendAccepted
	return nil
}

func (r memFriendRepo) Delete(_ context.Context, edgeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.friends[edgeID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.friends, edgeID)
	return nil
}

func (r memFriendRepo) ListAccepted(_ context.Context, userID int64) ([]domain.FriendInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.FriendInfo
	for _, e := range r.s.friends {
		if e.Status != domain.FriendAccepted {
			continue
		}
		var other int64
		switch userID {
		case e.SenderID:
			other = e.ReceiverID
		case e.ReceiverID:
			other = e.SenderID
		default:
			continue
		}
		out = append(out, domain.FriendInfo{EdgeID: e.ID, User: r.s.users[other], Since: e.CreatedAt})
	}
	return out, nil
}

// --- NotificationRepository ---

type memNotificationRepo struct{ s *memStore }

func (r memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = r.s.nextID()
	n.CreatedAt = time.Now()
	cp := *n
	r.s.notifications[n.ID] = &cp
	return nil
}

func (r memNotificationRepo) Get(_ context.Context, id int64) (*domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return n, nil
}

func (r memNotificationRepo) ListByUser(_ context.Context, userID int64) ([]domain.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memNotificationRepo) MarkRead(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r memNotificationRepo) MarkAllReadFromSender(_ context.Context, recipientID, senderID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var marked int64
	for _, n := range r.s.notifications {
		if n.UserID != recipientID || n.IsRead || n.MessageID == nil {
			continue
		}
		m, ok := r.s.messages[*n.MessageID]
		if !ok || m.SenderID == nil || *m.SenderID != senderID {
			continue
		}
		n.IsRead = true
		marked++
	}
	return marked, nil
}

func (r memNotificationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

func (r memNotificationRepo) UnreadCountsBySender(_ context.Context, userID int64) ([]domain.UnreadBySender, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[int64]int64)
	for _, n := range r.s.notifications {
		if n.UserID != userID || n.IsRead || n.MessageID == nil {
			continue
		}
		m, ok := r.s.messages[*n.MessageID]
		if !ok || m.SenderID == nil {
			continue
		}
		counts[*m.SenderID]++
	}
	out := make([]domain.UnreadBySender, 0, len(counts))
	for sid, c := range counts {
		out = append(out, domain.UnreadBySender{SenderID: sid, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SenderID < out[j].SenderID })
	return out, nil
}

// --- UserRepository ---

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Get(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r memUserRepo) Search(_ context.Context, username string, limit int) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.User
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memUserRepo) SetOnline(_ context.Context, id int64, online bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsOnline = online
	r.s.users[id] = u
	return nil
}

// --- LikeRepository ---

type memLikeRepo struct{ s *memStore }

func (r memLikeRepo) Add(_ context.Context, l *domain.MessageLike) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{l.MessageID, l.UserID}
	if _, ok := r.s.likes[key]; ok {
		return repository.ErrAlreadyExists
	}
	l.CreatedAt = time.Now()
	cp := *l
	r.s.likes[key] = &cp
	return nil
}

func (r memLikeRepo) Remove(_ context.Context, messageID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{messageID, userID}
	if _, ok := r.s.likes[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.likes, key)
	return nil
}

func (r memLikeRepo) ListByMessage(_ context.Context, messageID int64) ([]domain.MessageLike, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.MessageLike
	for key, l := range r.s.likes {
		if key[0] == messageID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// --- Publisher ---

type publishedEvent struct {
	Topic   string // пусто для Broadcast
	Event   string
	Payload any
}

// capturePublisher собирает всё опубликованное для ассертов.
type capturePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *capturePublisher) Publish(topic, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Event: event, Payload: payload})
}

func (p *capturePublisher) Broadcast(event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Event: event, Payload: payload})
}

func (p *capturePublisher) byEvent(event string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}
