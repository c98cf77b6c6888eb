package stats

import (
	"context"
	"sort"
	"sync"
)

type MemorySink struct {
	mu    sync.RWMutex
	users map[string]Statistics
}

func NewMemorySink() *MemorySink {
	return &MemorySink{users: make(map[string]Statistics)}
}

func (s *MemorySink) UpdateUserStatistics(_ context.Context, username string, score float64, wasBestMatch bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = fold(s.users[username], score, wasBestMatch)
	return nil
}

func (s *MemorySink) GetUserStatistics(_ context.Context, username string) (Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[username], nil
}

func (s *MemorySink) TopPlayers(_ context.Context, n int) ([]RankedPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ranked := make([]RankedPlayer, 0, len(s.users))
	for username, st := range s.users {
		ranked = append(ranked, RankedPlayer{Username: username, Statistics: st})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageCompatibilityScore != ranked[j].AverageCompatibilityScore {
			return ranked[i].AverageCompatibilityScore > ranked[j].AverageCompatibilityScore
		}
		return ranked[i].Username < ranked[j].Username
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}
