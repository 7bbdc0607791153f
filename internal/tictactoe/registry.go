package tictactoe

import (
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

type roomEntry struct {
	mu      sync.Mutex
	room    *entity.Room
	removed atomic.Bool
}

// Registry owns every live room. The map lock guards insert/lookup/delete only;
// gameplay on a room is serialized by that room's own lock (see Do).
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*roomEntry
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*roomEntry),
	}
}

// GetOrCreate returns a snapshot of the room under key, creating it with default state.
// A created room stays registered until Remove, or until a Do on it leaves it empty.
func (that *Registry) GetOrCreate(key string) *entity.Room {
	for {
		if room, ok := that.entry(key, true).snapshot(); ok {
			return room
		}
	}
}

// Get returns a snapshot of the room under key for read-only inspection.
func (that *Registry) Get(key string) (*entity.Room, bool) {
	entry := that.entry(key, false)
	if entry == nil {
		return nil, false
	}

	return entry.snapshot()
}

// Remove deletes the room under key; no-op if absent. An event already queued on
// the removed room's lock is dropped.
func (that *Registry) Remove(key string) {
	that.mu.Lock()
	entry, ok := that.rooms[key]
	delete(that.rooms, key)
	that.mu.Unlock()

	if ok {
		entry.removed.Store(true)
	}
}

func (that *Registry) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

// Reset drops every room.
func (that *Registry) Reset() {
	that.mu.Lock()
	old := that.rooms
	that.rooms = make(map[string]*roomEntry)
	that.mu.Unlock()

	for _, entry := range old {
		entry.removed.Store(true)
	}
}

// Do runs fn with exclusive access to the room under key, at most one fn per room at a time.
// With create set a missing room is created first; otherwise Do reports false and fn is not run.
// A room left without players after fn is removed from the registry.
// fn must not call back into Do or Remove for the same key.
func (that *Registry) Do(key string, create bool, fn func(room *entity.Room)) bool {
	for {
		entry := that.entry(key, create)
		if entry == nil {
			return false
		}

		if that.run(key, entry, fn) {
			return true
		}

		if !create {
			return false
		}
	}
}

// run reports false when entry was removed before its lock was taken.
func (that *Registry) run(key string, entry *roomEntry, fn func(room *entity.Room)) bool {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed.Load() {
		return false
	}

	defer func() {
		if entry.room.IsEmpty() {
			that.removeEntry(key, entry)
		}
	}()

	fn(entry.room)

	return true
}

func (that *roomEntry) snapshot() (*entity.Room, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.removed.Load() {
		return nil, false
	}

	return that.room.Clone(), true
}

func (that *Registry) entry(key string, create bool) *roomEntry {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.rooms[key]
	if ok {
		return entry
	}

	if !create {
		return nil
	}

	entry = &roomEntry{room: entity.NewRoom(key)}
	that.rooms[key] = entry

	return entry
}

func (that *Registry) removeEntry(key string, entry *roomEntry) {
	that.mu.Lock()
	if that.rooms[key] == entry {
		delete(that.rooms, key)
	}
	that.mu.Unlock()

	entry.removed.Store(true)
}
