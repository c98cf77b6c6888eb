package swipe

import (
	"context"
	"sync"
	"time"

	"github.com/swipedeck/swipedeck/internal/statement"
)

// MemoryStore keeps swipe records in process memory. Used for tests and
// single-node deployments without Redis.
type MemoryStore struct {
	catalog *statement.Catalog

	mu      sync.RWMutex
	rooms   map[string]map[string]map[string]Record // room -> user -> statementID -> record
}

func NewMemoryStore(catalog *statement.Catalog) *MemoryStore {
	return &MemoryStore{
		catalog: catalog,
		rooms:   make(map[string]map[string]map[string]Record),
	}
}

func (s *MemoryStore) SaveSwipe(_ context.Context, roomCode, username, statementID string, agree bool) error {
	stmt, ok := s.catalog.Get(statementID)
	if !ok {
		return ErrUnknownStatement
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.rooms[roomCode]
	if users == nil {
		users = make(map[string]map[string]Record)
		s.rooms[roomCode] = users
	}
	records := users[username]
	if records == nil {
		records = make(map[string]Record)
		users[username] = records
	}
	// last write wins, timestamp renewed
	delete(records, statementID)
	records[statementID] = Record{
		RoomCode:      roomCode,
		Username:      username,
		StatementID:   statementID,
		StatementText: stmt.Text,
		Agree:         agree,
		SwipedAt:      time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) GetPlayerSwipes(_ context.Context, roomCode, username string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Record{}
	for _, rec := range s.rooms[roomCode][username] {
		out = append(out, rec)
	}
	return out, nil
}

func (s *MemoryStore) GetRoomSwipes(_ context.Context, roomCode string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Record{}
	for _, records := range s.rooms[roomCode] {
		for _, rec := range records {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) ClearRoomData(_ context.Context, roomCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomCode)
	return nil
}
