package compat

import (
	"context"
	"math"
	"sort"

	"github.com/swipedeck/swipedeck/internal/swipe"
)

// Score is the pairwise compatibility of two players: how many of the
// statements both answered got the same swipe. The percentage is derived,
// never stored.
type Score struct {
	Player1         string `json:"player1"`
	Player2         string `json:"player2"`
	MatchingSwipes  int    `json:"matchingSwipes"`
	TotalStatements int    `json:"totalStatements"`
}

// Percentage is MatchingSwipes/TotalStatements as a percent, rounded to
// two decimals. Disjoint answer sets score 0.
func (s Score) Percentage() float64 {
	if s.TotalStatements == 0 {
		return 0
	}
	return math.Round(float64(s.MatchingSwipes)/float64(s.TotalStatements)*10000) / 100
}

// Involves reports whether the score is about the named player.
func (s Score) Involves(username string) bool {
	return s.Player1 == username || s.Player2 == username
}

// PartnerOf returns the other player of the pair, or "" if username is not
// part of it.
func (s Score) PartnerOf(username string) string {
	switch username {
	case s.Player1:
		return s.Player2
	case s.Player2:
		return s.Player1
	}
	return ""
}

// MatchInfo is one player's best-match summary for a session. Best matches
// are not symmetric: A's best partner may consider someone else their best.
type MatchInfo struct {
	BestMatchPartner       string  `json:"bestMatchPartner"`
	BestMatchPercentage    float64 `json:"bestMatchPercentage"`
	WasBestMatchForPartner bool    `json:"wasBestMatchForPartner"`
	AllMatches             []Score `json:"allMatches"`
}

// GameStatistics is a player's per-game summary derived from the session's
// pairwise results.
type GameStatistics struct {
	GamesPlayed          int     `json:"gamesPlayed"`
	AverageCompatibility float64 `json:"averageCompatibility"`
	BestMatchPercentage  float64 `json:"bestMatchPercentage"`
	WasBestMatch         bool    `json:"wasBestMatch"`
}

// Calculator derives compatibility scores from stored swipes.
type Calculator struct {
	store swipe.Store
}

func NewCalculator(store swipe.Store) *Calculator {
	return &Calculator{store: store}
}

// Calculate scores one pair: the statement IDs both players answered form
// the denominator, matching agree values the numerator.
func (c *Calculator) Calculate(ctx context.Context, roomCode, playerA, playerB string) (Score, error) {
	swipesA, err := c.store.GetPlayerSwipes(ctx, roomCode, playerA)
	if err != nil {
		return Score{}, err
	}
	swipesB, err := c.store.GetPlayerSwipes(ctx, roomCode, playerB)
	if err != nil {
		return Score{}, err
	}

	agreeA := make(map[string]bool, len(swipesA))
	for _, rec := range swipesA {
		agreeA[rec.StatementID] = rec.Agree
	}

	score := Score{Player1: playerA, Player2: playerB}
	for _, rec := range swipesB {
		a, answered := agreeA[rec.StatementID]
		if !answered {
			continue
		}
		score.TotalStatements++
		if a == rec.Agree {
			score.MatchingSwipes++
		}
	}
	return score, nil
}

// CalculateAllCompatibilities scores every unordered pair among usernames,
// sorted descending by percentage. Ties keep pair generation order (outer
// index, then inner, over the input slice) — the sort is stable.
func (c *Calculator) CalculateAllCompatibilities(ctx context.Context, roomCode string, usernames []string) ([]Score, error) {
	results := []Score{}
	for i := 0; i < len(usernames); i++ {
		for j := i + 1; j < len(usernames); j++ {
			score, err := c.Calculate(ctx, roomCode, usernames[i], usernames[j])
			if err != nil {
				return nil, err
			}
			results = append(results, score)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Percentage() > results[j].Percentage()
	})
	return results, nil
}

// GetBestMatchesForPlayers picks, for every player appearing in the
// results, the highest-percentage pair involving them (first hit after the
// descending sort breaks ties). WasBestMatchForPartner recomputes the
// partner's own best match and checks whether it points back; the answer
// is deliberately not forced to be mutual.
func GetBestMatchesForPlayers(allResults []Score) map[string]MatchInfo {
	out := make(map[string]MatchInfo)
	for _, username := range playersIn(allResults) {
		best, ok := bestFor(username, allResults)
		if !ok {
			continue
		}
		partner := best.PartnerOf(username)
		info := MatchInfo{
			BestMatchPartner:    partner,
			BestMatchPercentage: best.Percentage(),
			AllMatches:          matchesFor(username, allResults),
		}
		if partnerBest, ok := bestFor(partner, allResults); ok {
			info.WasBestMatchForPartner = partnerBest.Involves(username)
		}
		out[username] = info
	}
	return out
}

// GetPlayerStatistics derives one player's game summary from the session
// results. WasBestMatch means the player is part of the top-ranked pair of
// the whole session.
func GetPlayerStatistics(username string, allResults []Score) GameStatistics {
	st := GameStatistics{}
	if len(allResults) == 0 {
		return st
	}
	st.GamesPlayed = 1
	st.WasBestMatch = allResults[0].Involves(username)

	var sum float64
	var count int
	for _, score := range allResults {
		if !score.Involves(username) {
			continue
		}
		sum += score.Percentage()
		count++
	}
	if count > 0 {
		st.AverageCompatibility = sum / float64(count)
	}
	if best, ok := bestFor(username, allResults); ok {
		st.BestMatchPercentage = best.Percentage()
	}
	return st
}

// bestFor returns the first result involving username. Results must
// already be sorted descending by percentage.
func bestFor(username string, sorted []Score) (Score, bool) {
	for _, score := range sorted {
		if score.Involves(username) {
			return score, true
		}
	}
	return Score{}, false
}

func matchesFor(username string, results []Score) []Score {
	out := []Score{}
	for _, score := range results {
		if score.Involves(username) {
			out = append(out, score)
		}
	}
	return out
}

// playersIn lists every username appearing in the results, in first-seen
// order.
func playersIn(results []Score) []string {
	seen := make(map[string]struct{})
	players := []string{}
	for _, score := range results {
		for _, name := range []string{score.Player1, score.Player2} {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				players = append(players, name)
			}
		}
	}
	return players
}
