package history

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

// RedisStore keeps one list of entry JSON per participant. LPush puts the
// newest game at the head, so ForPlayer reads come back newest first
// without sorting.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func playerHistoryKey(username string) string {
	return "history:player:" + username
}

func (s *RedisStore) Save(ctx context.Context, entry Entry) error {
	bz, err := json.Marshal(entry)
	if err != nil {
		return eris.Wrap(err, "failed to encode history entry")
	}
	pipe := s.client.TxPipeline()
	for _, username := range entry.PlayerUsernames {
		pipe.LPush(ctx, playerHistoryKey(username), bz)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrap(err, "failed to save history entry")
	}
	return nil
}

func (s *RedisStore) ForPlayer(ctx context.Context, username string) ([]Entry, error) {
	raw, err := s.client.LRange(ctx, playerHistoryKey(username), 0, -1).Result()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load player history")
	}
	out := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, eris.Wrap(err, "failed to decode history entry")
		}
		out = append(out, entry)
	}
	return out, nil
}
