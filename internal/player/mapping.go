package player

import "sync"

type mapping struct {
	username string
	roomCode string
}

// MappingRepository tracks which connection belongs to which player and
// room. PlayerManager keeps it in lockstep with the room player lists.
type MappingRepository struct {
	mu     sync.RWMutex
	byConn map[string]mapping
}

func NewMappingRepository() *MappingRepository {
	return &MappingRepository{byConn: make(map[string]mapping)}
}

func (r *MappingRepository) AddPlayer(connID, username, roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byConn[connID] = mapping{username: username, roomCode: roomCode}
}

func (r *MappingRepository) RemovePlayer(connID string) (found bool, roomCode, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byConn[connID]
	if !ok {
		return false, "", ""
	}
	delete(r.byConn, connID)
	return true, m.roomCode, m.username
}

func (r *MappingRepository) GetPlayerUsername(connID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byConn[connID].username
}
