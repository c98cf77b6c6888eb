package room

import "sync"

// Repository is the thread-safe registry of live rooms keyed by code.
type Repository struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRepository() *Repository {
	return &Repository{rooms: make(map[string]*Room)}
}

func (r *Repository) AddRoom(rm *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.Code] = rm
}

// AddIfAbsent inserts the room unless its code is already taken, keeping
// code uniqueness atomic with the insert. Callers retry with a fresh code
// on false.
func (r *Repository) AddIfAbsent(rm *Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.rooms[rm.Code]; taken {
		return false
	}
	r.rooms[rm.Code] = rm
	return true
}

func (r *Repository) GetRoom(code string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[code]
	return rm, ok
}

func (r *Repository) RemoveRoom(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[code]; !ok {
		return false
	}
	delete(r.rooms, code)
	return true
}

// RemoveIfEmpty deletes the room only if it is still empty at the moment
// of removal. The emptiness re-check runs under both the repository lock
// and the room lock, so a join racing the cleanup either lands before the
// removal (the room survives) or after it (Admit rejects the retired
// room); no player ends up inside a deleted room.
func (r *Repository) RemoveIfEmpty(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[code]
	if !ok {
		return false
	}
	if !rm.retire() {
		return false
	}
	delete(r.rooms, code)
	return true
}

func (r *Repository) GetAllRoomCodes() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make(map[string]struct{}, len(r.rooms))
	for code := range r.rooms {
		codes[code] = struct{}{}
	}
	return codes
}

func (r *Repository) GetAllRooms() []*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, rm)
	}
	return out
}
