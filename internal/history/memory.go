package history

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryStore) ForPlayer(_ context.Context, username string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Entry{}
	// entries append in play order; walk backwards for newest first
	for i := len(s.entries) - 1; i >= 0; i-- {
		for _, name := range s.entries[i].PlayerUsernames {
			if name == username {
				out = append(out, s.entries[i])
				break
			}
		}
	}
	return out, nil
}
