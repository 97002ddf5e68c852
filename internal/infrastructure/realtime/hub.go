package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/infrastructure/metrics"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

const (
	outboundBufferSize = 1024
	eventTimeout       = 5 * time.Second
)

// UserPresence resolves socket tokens and persists online state.
type UserPresence interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	SetPresence(ctx context.Context, userID string, online bool) error
}

// ConversationAccess decides who may join a conversation room.
type ConversationAccess interface {
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
}

// delivery addresses one outbound message. Exactly one of target, room or
// all selects the recipients.
type delivery struct {
	target   *Client
	room     string
	all      bool
	authOnly bool
	exclude  *Client
	msg      Message
}

// Hub owns every realtime connection of this instance. Client send channels
// are written and closed only by the goroutine running RunWithContext.
type Hub struct {
	instanceID    string
	users         UserPresence
	conversations ConversationAccess
	presence      contract.IPresenceRegistry
	logger        usecasecontract.IAppLogger

	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	outbound   chan delivery
	done       chan struct{}
	connSeq    atomic.Uint64
}

var _ usecasecontract.IRealtimeNotifier = (*Hub)(nil)

func NewHub(instanceID string, users UserPresence, conversations ConversationAccess, presence contract.IPresenceRegistry, logger usecasecontract.IAppLogger) *Hub {
	return &Hub{
		instanceID:    instanceID,
		users:         users,
		conversations: conversations,
		presence:      presence,
		logger:        logger,
		clients:       make(map[*Client]bool),
		rooms:         make(map[string]map[*Client]bool),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		outbound:      make(chan delivery, outboundBufferSize),
		done:          make(chan struct{}),
	}
}

// RunWithContext processes registrations and deliveries until ctx ends, then
// closes every client.
func (h *Hub) RunWithContext(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			n := h.closeAllClients()
			h.logger.Infof("realtime hub stopped (%v), %d clients closed", ctx.Err(), n)
			return ctx.Err()
		case c := <-h.Register:
			h.addClient(c)
		case c := <-h.Unregister:
			h.removeClient(c)
		case d := <-h.outbound:
			h.deliver(d)
		}
	}
}

// Attach wraps an upgraded connection in a client and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn) *Client {
	c := newClient(h, conn)
	select {
	case h.Register <- c:
	case <-h.done:
		_ = conn.Close()
		return nil
	}
	c.start()
	return c
}

// EmitToRoom delivers an event to every client that joined room.
func (h *Hub) EmitToRoom(room, event string, payload interface{}) {
	h.dispatch(delivery{room: room, msg: Message{Event: event, Data: payload}})
}

// Broadcast delivers an event to every authenticated client.
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.dispatch(delivery{all: true, authOnly: true, msg: Message{Event: event, Data: payload}})
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) dispatch(d delivery) {
	select {
	case h.outbound <- d:
	case <-h.done:
	}
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WebsocketConnections.Inc()
	h.logger.Debugf("realtime client %s connected, %d total", c.id, total)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	h.leaveAllRooms(c)
	userID := c.userID
	total := len(h.clients)
	close(c.send)
	h.mu.Unlock()

	metrics.WebsocketConnections.Dec()
	h.logger.Debugf("realtime client %s disconnected, %d total", c.id, total)
	if userID != "" {
		go h.goOffline(userID, c.id)
	}
}

// leaveAllRooms must be called with h.mu held.
func (h *Hub) leaveAllRooms(c *Client) {
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// closeAllClients closes every connection and takes their users offline
// before the hub stops, so no presence entry outlives this instance.
func (h *Hub) closeAllClients() int {
	type session struct{ userID, connID string }

	h.mu.Lock()
	n := len(h.clients)
	var sessions []session
	for c := range h.clients {
		if c.userID != "" {
			sessions = append(sessions, session{userID: c.userID, connID: c.id})
		}
		delete(h.clients, c)
		close(c.send)
		metrics.WebsocketConnections.Dec()
	}
	h.rooms = make(map[string]map[*Client]bool)
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	for _, s := range sessions {
		h.markOffline(ctx, s.userID, s.connID)
	}
	return n
}

func (h *Hub) deliver(d delivery) {
	h.mu.RLock()
	var recipients []*Client
	switch {
	case d.target != nil:
		if h.clients[d.target] {
			recipients = append(recipients, d.target)
		}
	case d.room != "":
		for c := range h.rooms[d.room] {
			if c != d.exclude {
				recipients = append(recipients, c)
			}
		}
	case d.all:
		for c := range h.clients {
			if c == d.exclude || (d.authOnly && c.userID == "") {
				continue
			}
			recipients = append(recipients, c)
		}
	}
	h.mu.RUnlock()

	var slow []*Client
	for _, c := range recipients {
		select {
		case c.send <- d.msg:
			metrics.WebsocketEvents.WithLabelValues("out", d.msg.Event).Inc()
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		h.logger.Warnf("realtime client %s is not keeping up, disconnecting", c.id)
		h.removeClient(c)
	}
}

// goOffline runs after a connection closes. The user only goes offline when
// the registry still pointed at this connection.
func (h *Hub) goOffline(userID, connID string) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if h.markOffline(ctx, userID, connID) {
		h.dispatch(delivery{all: true, msg: Message{Event: EventUserOffline, Data: UserPayload{UserID: userID}}})
	}
}

// markOffline drops the presence entry of connID and persists the offline
// state. It reports whether the user actually went offline.
func (h *Hub) markOffline(ctx context.Context, userID, connID string) bool {
	removed, err := h.presence.Unregister(ctx, userID, connID)
	if err != nil {
		h.logger.Errorf("failed to unregister presence of %s: %v", userID, err)
		return false
	}
	if !removed {
		return false
	}
	if err := h.users.SetPresence(ctx, userID, false); err != nil {
		h.logger.Warnf("failed to persist offline state of %s: %v", userID, err)
	}
	return true
}

func (h *Hub) userOf(c *Client) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.userID
}

func (h *Hub) sendTo(c *Client, event string, data interface{}) {
	h.dispatch(delivery{target: c, msg: Message{Event: event, Data: data}})
}

func (h *Hub) sendError(c *Client, message string) {
	h.sendTo(c, EventError, ErrorPayload{Message: message})
}

func (h *Hub) handleEvent(c *Client, env Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	switch env.Event {
	case EventAuthenticate:
		h.authenticate(ctx, c, decodeToken(env.Data))
	case EventJoinConversation:
		h.joinConversation(ctx, c, decodeConversationID(env.Data))
	case EventLeaveConversation:
		h.leaveConversation(c, decodeConversationID(env.Data))
	case EventTyping:
		h.typing(c, env.Data)
	case EventPing:
		h.sendTo(c, EventPong, nil)
	default:
		metrics.WebsocketEvents.WithLabelValues("in", "unknown").Inc()
		h.sendError(c, "unknown event")
		return
	}
	metrics.WebsocketEvents.WithLabelValues("in", env.Event).Inc()
}

func (h *Hub) authenticate(ctx context.Context, c *Client, token string) {
	if token == "" {
		h.sendTo(c, EventAuthError, ErrorPayload{Message: "token is required"})
		return
	}
	user, err := h.users.Authenticate(ctx, token)
	if err != nil {
		h.logger.Debugf("realtime client %s failed to authenticate: %v", c.id, err)
		h.sendTo(c, EventAuthError, ErrorPayload{Message: "invalid or expired token"})
		return
	}

	h.mu.Lock()
	previous := c.userID
	if previous != user.ID {
		h.leaveAllRooms(c)
	}
	c.userID = user.ID
	h.mu.Unlock()
	if previous != "" && previous != user.ID {
		go h.goOffline(previous, c.id)
	}

	if err := h.presence.Register(ctx, user.ID, c.id); err != nil {
		h.logger.Errorf("failed to register presence of %s: %v", user.ID, err)
	}
	if err := h.users.SetPresence(ctx, user.ID, true); err != nil {
		h.logger.Warnf("failed to persist online state of %s: %v", user.ID, err)
	}
	h.sendTo(c, EventAuthenticated, UserPayload{UserID: user.ID})
	h.dispatch(delivery{all: true, exclude: c, msg: Message{Event: EventUserOnline, Data: UserPayload{UserID: user.ID}}})
}

func (h *Hub) joinConversation(ctx context.Context, c *Client, conversationID string) {
	userID := h.userOf(c)
	if userID == "" {
		h.sendError(c, "not authenticated")
		return
	}
	if conversationID == "" {
		h.sendError(c, "conversationId is required")
		return
	}
	ok, err := h.conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		h.logger.Warnf("participant check for %s in %s failed: %v", userID, conversationID, err)
		h.sendError(c, "could not join conversation")
		return
	}
	if !ok {
		h.sendError(c, "not a participant of this conversation")
		return
	}

	h.mu.Lock()
	if h.clients[c] {
		members, exists := h.rooms[conversationID]
		if !exists {
			members = make(map[*Client]bool)
			h.rooms[conversationID] = members
		}
		members[c] = true
	}
	h.mu.Unlock()
}

func (h *Hub) leaveConversation(c *Client, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[conversationID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, conversationID)
		}
	}
}

// typing relays an ephemeral indicator to the other members of a joined room.
func (h *Hub) typing(c *Client, raw json.RawMessage) {
	var p TypingPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.ConversationID == "" {
		h.sendError(c, "typing requires conversationId")
		return
	}

	h.mu.RLock()
	userID := c.userID
	joined := h.rooms[p.ConversationID][c]
	h.mu.RUnlock()
	if userID == "" {
		h.sendError(c, "not authenticated")
		return
	}
	if !joined {
		h.sendError(c, "join the conversation first")
		return
	}
	h.dispatch(delivery{
		room:    p.ConversationID,
		exclude: c,
		msg: Message{Event: EventUserTyping, Data: TypingPayload{
			ConversationID: p.ConversationID,
			UserID:         userID,
			IsTyping:       p.IsTyping,
		}},
	})
}
