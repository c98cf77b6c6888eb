package stats

import "context"

// Statistics is the long-lived per-user aggregate.
type Statistics struct {
	TotalGamesPlayed          int     `json:"totalGamesPlayed"`
	AverageCompatibilityScore float64 `json:"averageCompatibilityScore"`
	BestMatchesCount          int     `json:"bestMatchesCount"`
}

// RankedPlayer is one leaderboard row.
type RankedPlayer struct {
	Username string `json:"username"`
	Statistics
}

// Sink receives one update per participant at the end of each game and
// serves the leaderboard.
type Sink interface {
	// UpdateUserStatistics increments games played, folds score into the
	// running mean, and counts the best match if wasBestMatch.
	UpdateUserStatistics(ctx context.Context, username string, score float64, wasBestMatch bool) error
	GetUserStatistics(ctx context.Context, username string) (Statistics, error)
	// TopPlayers returns up to n players ordered by average compatibility,
	// highest first.
	TopPlayers(ctx context.Context, n int) ([]RankedPlayer, error)
}

func fold(s Statistics, score float64, wasBestMatch bool) Statistics {
	games := s.TotalGamesPlayed
	s.AverageCompatibilityScore = (s.AverageCompatibilityScore*float64(games) + score) / float64(games+1)
	s.TotalGamesPlayed = games + 1
	if wasBestMatch {
		s.BestMatchesCount++
	}
	return s
}
