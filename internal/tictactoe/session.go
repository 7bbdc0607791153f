package tictactoe

import "sync"

// Session binds a live connection to at most one room key.
type Session struct {
	ConnID  string
	RoomKey string
}

func (that Session) InRoom() bool {
	return that.RoomKey != ""
}

// Sessions is the connection id -> session side table.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]Session),
	}
}

func (that *Sessions) Open(connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[connID]; !ok {
		that.sessions[connID] = Session{ConnID: connID}
	}
}

func (that *Sessions) Get(connID string) (Session, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[connID]

	return session, ok
}

// Bind reports false for unknown connections.
func (that *Sessions) Bind(connID, roomKey string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[connID]
	if !ok {
		return false
	}

	session.RoomKey = roomKey
	that.sessions[connID] = session

	return true
}

func (that *Sessions) Unbind(connID string) {
	that.Bind(connID, "")
}

// Close discards the session and returns its last state.
func (that *Sessions) Close(connID string) (Session, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[connID]
	delete(that.sessions, connID)

	return session, ok
}

func (that *Sessions) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
