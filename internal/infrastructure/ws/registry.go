package ws

import (
	"sync"
)

// Registry owns the mapping from room id (booking id) to the set of live
// sessions. Nothing else mutates room membership. All methods are safe for
// concurrent use; Broadcast snapshots the member set so fan-out never races
// with join/leave on the same room.
type Registry struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Join adds the client to the room, creating the room entry on first join.
// Joining a room the client is already in is a no-op. A session is in at most
// one room: joining a different room leaves the previous one first.
func (r *Registry) Join(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.roomID != "" && c.roomID != roomID {
		r.removeLocked(c.roomID, c)
	}

	room, ok := r.rooms[roomID]
	if !ok {
		room = make(map[*Client]struct{})
		r.rooms[roomID] = room
	}
	room[c] = struct{}{}
	c.roomID = roomID
}

// Leave removes the client from its room, if any. Empty rooms are reaped
// eagerly.
func (r *Registry) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.roomID == "" {
		return
	}
	r.removeLocked(c.roomID, c)
	c.roomID = ""
}

func (r *Registry) removeLocked(roomID string, c *Client) {
	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(r.rooms, roomID)
	}
}

// Broadcast delivers the event to every session in the room, the sender
// included. Within a session events arrive in broadcast order; a session
// whose buffer is full drops the event rather than stalling the room.
func (r *Registry) Broadcast(roomID string, event *Event) {
	r.mu.RLock()
	members := make([]*Client, 0, len(r.rooms[roomID]))
	for c := range r.rooms[roomID] {
		members = append(members, c)
	}
	r.mu.RUnlock()

	for _, c := range members {
		c.trySend(event)
	}
}

// RoomCount returns the number of active rooms.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// MemberCount returns the number of sessions currently in the room.
func (r *Registry) MemberCount(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}
