package history

import (
	"context"
	"math"
	"time"
)

// PairResult is the persisted shape of one pairwise compatibility score.
// The percentage is recomputed from the counts on read so the stored data
// cannot drift from the formula.
type PairResult struct {
	Player1         string `json:"player1"`
	Player2         string `json:"player2"`
	MatchingSwipes  int    `json:"matchingSwipes"`
	TotalStatements int    `json:"totalStatements"`
}

func (p PairResult) Percentage() float64 {
	if p.TotalStatements == 0 {
		return 0
	}
	return math.Round(float64(p.MatchingSwipes)/float64(p.TotalStatements)*10000) / 100
}

// Entry is the immutable record of one finished game.
type Entry struct {
	ID                  string       `json:"id"`
	RoomCode            string       `json:"roomCode"`
	PlayedDate          time.Time    `json:"playedDate"`
	TotalPlayers        int          `json:"totalPlayers"`
	PlayerUsernames     []string     `json:"playerUsernames"`
	BestMatchPlayer     string       `json:"bestMatchPlayer"`
	BestMatchPercentage float64      `json:"bestMatchPercentage"`
	AllResults          []PairResult `json:"allResults"`
}

// Store persists finished games.
type Store interface {
	Save(ctx context.Context, entry Entry) error
	// ForPlayer returns every entry whose player list contains username,
	// newest first.
	ForPlayer(ctx context.Context, username string) ([]Entry, error)
}
