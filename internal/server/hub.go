package server

import (
	"fmt"
	"sync"

	"github.com/arun278627862/secure-quiz/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-set/v2"
)

// Envelope is the wire format for every event pushed to a viewer.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// ViewerSession is one connected websocket client, optionally joined to named
// rooms. Writes are serialized per connection, gorilla conns do not allow
// concurrent writers. Room membership gets its own lock: the connection's
// read loop mutates it while broadcaster goroutines check it.
type ViewerSession struct {
	Id      string
	conn    *websocket.Conn
	rooms   *set.Set[string]
	roomsMu sync.Mutex
	mu      sync.Mutex
}

func (v *ViewerSession) Send(event string, payload any) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.WriteJSON(Envelope{Event: event, Data: payload})
}

func (v *ViewerSession) joinRoom(room string) {
	v.roomsMu.Lock()
	defer v.roomsMu.Unlock()
	v.rooms.Insert(room)
}

func (v *ViewerSession) leaveRoom(room string) {
	v.roomsMu.Lock()
	defer v.roomsMu.Unlock()
	v.rooms.Remove(room)
}

func (v *ViewerSession) inRoom(room string) bool {
	v.roomsMu.Lock()
	defer v.roomsMu.Unlock()
	return v.rooms.Contains(room)
}

// Hub is the broadcast gateway. Delivery is at-most-once per currently
// connected session, there is no queueing or replay. Late joiners catch up
// through the state_update snapshot sent on connect.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*ViewerSession
	Logger   logger.Logger
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*ViewerSession),
		Logger:   logger.New("hub"),
	}
}

func (h *Hub) Add(conn *websocket.Conn) *ViewerSession {
	session := &ViewerSession{
		Id:    uuid.NewString(),
		conn:  conn,
		rooms: set.New[string](4),
	}
	h.mu.Lock()
	h.sessions[session.Id] = session
	h.mu.Unlock()
	h.Logger.Info(fmt.Sprintf("Viewer %s connected", session.Id))
	return session
}

func (h *Hub) Remove(sessionId string) {
	h.mu.Lock()
	session, exists := h.sessions[sessionId]
	delete(h.sessions, sessionId)
	h.mu.Unlock()
	if exists {
		session.conn.Close()
		h.Logger.Info(fmt.Sprintf("Viewer %s disconnected", sessionId))
	}
}

// JoinRoom adds the session to a room. Takes effect for subsequent broadcasts
// only.
func (h *Hub) JoinRoom(sessionId, room string) {
	h.mu.Lock()
	session, exists := h.sessions[sessionId]
	h.mu.Unlock()
	if !exists || room == "" {
		return
	}
	session.joinRoom(room)
	h.Logger.Info(fmt.Sprintf("Viewer %s joined room %s", sessionId, room))
}

func (h *Hub) LeaveRoom(sessionId, room string) {
	h.mu.Lock()
	session, exists := h.sessions[sessionId]
	h.mu.Unlock()
	if !exists {
		return
	}
	session.leaveRoom(room)
	h.Logger.Info(fmt.Sprintf("Viewer %s left room %s", sessionId, room))
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Emit delivers an event to every connected session. Sessions whose
// connection has gone away are dropped.
func (h *Hub) Emit(event string, payload any) {
	for _, session := range h.snapshot() {
		if err := session.Send(event, payload); err != nil {
			h.Logger.Error(fmt.Sprintf("Dropping viewer %s", session.Id), err)
			h.Remove(session.Id)
		}
	}
}

// EmitRoom delivers an event to the members of one room only.
func (h *Hub) EmitRoom(room, event string, payload any) {
	for _, session := range h.snapshot() {
		if !session.inRoom(room) {
			continue
		}
		if err := session.Send(event, payload); err != nil {
			h.Logger.Error(fmt.Sprintf("Dropping viewer %s", session.Id), err)
			h.Remove(session.Id)
		}
	}
}

func (h *Hub) snapshot() []*ViewerSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	sessions := make([]*ViewerSession, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}
