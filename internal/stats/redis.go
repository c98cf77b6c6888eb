package stats

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const leaderboardKey = "stats:leaderboard"

// RedisSink stores per-user aggregates in a hash and mirrors the running
// average into a sorted set so the leaderboard is a single ZRevRange.
type RedisSink struct {
	client *redis.Client
}

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client}
}

func userStatsKey(username string) string {
	return "stats:player:" + username
}

func (s *RedisSink) UpdateUserStatistics(ctx context.Context, username string, score float64, wasBestMatch bool) error {
	current, err := s.GetUserStatistics(ctx, username)
	if err != nil {
		return err
	}
	next := fold(current, score, wasBestMatch)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, userStatsKey(username),
		"games", next.TotalGamesPlayed,
		"avg", next.AverageCompatibilityScore,
		"best", next.BestMatchesCount,
	)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: next.AverageCompatibilityScore, Member: username})
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrap(err, "failed to update user statistics")
	}
	return nil
}

func (s *RedisSink) GetUserStatistics(ctx context.Context, username string) (Statistics, error) {
	fields, err := s.client.HGetAll(ctx, userStatsKey(username)).Result()
	if err != nil {
		return Statistics{}, eris.Wrap(err, "failed to load user statistics")
	}
	if len(fields) == 0 {
		return Statistics{}, nil
	}
	games, err := strconv.Atoi(fields["games"])
	if err != nil {
		return Statistics{}, eris.Wrap(err, "corrupt games field")
	}
	avg, err := strconv.ParseFloat(fields["avg"], 64)
	if err != nil {
		return Statistics{}, eris.Wrap(err, "corrupt avg field")
	}
	best, err := strconv.Atoi(fields["best"])
	if err != nil {
		return Statistics{}, eris.Wrap(err, "corrupt best field")
	}
	return Statistics{
		TotalGamesPlayed:          games,
		AverageCompatibilityScore: avg,
		BestMatchesCount:          best,
	}, nil
}

func (s *RedisSink) TopPlayers(ctx context.Context, n int) ([]RankedPlayer, error) {
	members, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load leaderboard")
	}
	ranked := make([]RankedPlayer, 0, len(members))
	for _, m := range members {
		username, _ := m.Member.(string)
		st, err := s.GetUserStatistics(ctx, username)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedPlayer{Username: username, Statistics: st})
	}
	return ranked, nil
}
