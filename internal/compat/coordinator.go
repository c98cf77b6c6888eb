package compat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/swipedeck/swipedeck/internal/history"
	"github.com/swipedeck/swipedeck/internal/statement"
	"github.com/swipedeck/swipedeck/internal/stats"
	"github.com/swipedeck/swipedeck/internal/swipe"
)

// Coordinator runs a room's compatibility game: hands out the room's
// statement set, records swipes, detects completion, and finalizes games
// into history and user statistics.
type Coordinator struct {
	store   swipe.Store
	calc    *Calculator
	catalog *statement.Catalog
	history history.Store
	stats   stats.Sink

	mu          sync.Mutex
	assignments map[string][]statement.Statement
}

func NewCoordinator(store swipe.Store, calc *Calculator, catalog *statement.Catalog, hist history.Store, sink stats.Sink) *Coordinator {
	return &Coordinator{
		store:       store,
		calc:        calc,
		catalog:     catalog,
		history:     hist,
		stats:       sink,
		assignments: make(map[string][]statement.Statement),
	}
}

// GetRoomStatements returns the room's fixed statement set, sampling it on
// first request. The get-or-create runs under one lock so two simultaneous
// first-requesters get the same sample; later calls return the cached list
// regardless of topics or count. A topic filter matching nothing caches an
// empty list.
func (co *Coordinator) GetRoomStatements(roomCode string, topics []string, count int) []statement.Statement {
	co.mu.Lock()
	defer co.mu.Unlock()
	if cached, ok := co.assignments[roomCode]; ok {
		return cached
	}
	sampled := co.catalog.Sample(topics, count)
	co.assignments[roomCode] = sampled
	return sampled
}

// SaveSwipe validates the statement and upserts the record. Persistence
// failures are logged and reported as false, not raised.
func (co *Coordinator) SaveSwipe(ctx context.Context, roomCode, username, statementID string, agree bool) bool {
	if !co.catalog.Exists(statementID) {
		log.Warn().Str("code", roomCode).Str("statementId", statementID).Msg("swipe for unknown statement")
		return false
	}
	if err := co.store.SaveSwipe(ctx, roomCode, username, statementID, agree); err != nil {
		log.Error().Err(err).Str("code", roomCode).Str("username", username).Msg("failed to save swipe")
		return false
	}
	return true
}

// HaveAllPlayersFinished reports whether every listed player has swiped at
// least totalStatements times in the room. Swipes from players not in the
// list are ignored.
func (co *Coordinator) HaveAllPlayersFinished(ctx context.Context, roomCode string, usernames []string, totalStatements int) (bool, error) {
	records, err := co.store.GetRoomSwipes(ctx, roomCode)
	if err != nil {
		return false, err
	}
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Username]++
	}
	for _, username := range usernames {
		if counts[username] < totalStatements {
			return false, nil
		}
	}
	return true, nil
}

// SaveGameToHistory finalizes a game: computes all pairwise scores, writes
// one history entry, then pushes each player's per-game statistics into
// the stats sink. With no scorable pairs the call is a logged no-op.
//
// The history entry is not rolled back if a stats update fails mid-loop;
// the returned error names the failed player so the caller can detect the
// partial application.
func (co *Coordinator) SaveGameToHistory(ctx context.Context, roomCode string, usernames []string) error {
	results, err := co.calc.CalculateAllCompatibilities(ctx, roomCode, usernames)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Info().Str("code", roomCode).Msg("no compatibility results, skipping history")
		return nil
	}

	best := results[0]
	// the entry is immutable; detach it from the caller's slice
	players := append([]string(nil), usernames...)
	entry := history.Entry{
		ID:                  uuid.NewString(),
		RoomCode:            roomCode,
		PlayedDate:          time.Now().UTC(),
		TotalPlayers:        len(players),
		PlayerUsernames:     players,
		BestMatchPlayer:     best.Player1 + " & " + best.Player2,
		BestMatchPercentage: best.Percentage(),
		AllResults:          toPairResults(results),
	}
	if err := co.history.Save(ctx, entry); err != nil {
		return eris.Wrap(err, "failed to save game history")
	}

	for _, username := range usernames {
		st := GetPlayerStatistics(username, results)
		if err := co.stats.UpdateUserStatistics(ctx, username, st.AverageCompatibility, st.WasBestMatch); err != nil {
			return eris.Wrapf(err, "statistics update failed for %s", username)
		}
	}
	log.Info().Str("code", roomCode).Int("players", len(usernames)).Float64("bestMatch", entry.BestMatchPercentage).Msg("game saved to history")
	return nil
}

// GetPlayerHistory returns the player's finished games, newest first.
func (co *Coordinator) GetPlayerHistory(ctx context.Context, username string) ([]history.Entry, error) {
	return co.history.ForPlayer(ctx, username)
}

// ClearRoomData deletes the room's swipes and evicts its statement
// assignment. History entries already written are untouched.
func (co *Coordinator) ClearRoomData(ctx context.Context, roomCode string) error {
	co.mu.Lock()
	delete(co.assignments, roomCode)
	co.mu.Unlock()
	return co.store.ClearRoomData(ctx, roomCode)
}

func toPairResults(results []Score) []history.PairResult {
	out := make([]history.PairResult, 0, len(results))
	for _, score := range results {
		out = append(out, history.PairResult{
			Player1:         score.Player1,
			Player2:         score.Player2,
			MatchingSwipes:  score.MatchingSwipes,
			TotalStatements: score.TotalStatements,
		})
	}
	return out
}
