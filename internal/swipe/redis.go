package swipe

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/swipedeck/swipedeck/internal/statement"
)

// RedisStore persists swipe records in Redis: one hash per (room, player)
// keyed by statement ID, plus a set of players per room so room-wide reads
// and deletes can find every hash.
type RedisStore struct {
	client  *redis.Client
	catalog *statement.Catalog
}

func NewRedisStore(client *redis.Client, catalog *statement.Catalog) *RedisStore {
	return &RedisStore{client: client, catalog: catalog}
}

func swipeKey(roomCode, username string) string {
	return "swipe:" + roomCode + ":" + username
}

func roomPlayersKey(roomCode string) string {
	return "swipe:" + roomCode + ":players"
}

func (s *RedisStore) SaveSwipe(ctx context.Context, roomCode, username, statementID string, agree bool) error {
	stmt, ok := s.catalog.Get(statementID)
	if !ok {
		return ErrUnknownStatement
	}

	rec := Record{
		RoomCode:      roomCode,
		Username:      username,
		StatementID:   statementID,
		StatementText: stmt.Text,
		Agree:         agree,
		SwipedAt:      time.Now().UTC(),
	}
	bz, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "failed to encode swipe record")
	}

	// HSet overwrites the field, which gives the upsert semantics: the
	// previous swipe for this statement is replaced wholesale.
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, swipeKey(roomCode, username), statementID, bz)
	pipe.SAdd(ctx, roomPlayersKey(roomCode), username)
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrap(err, "failed to save swipe")
	}
	return nil
}

func (s *RedisStore) GetPlayerSwipes(ctx context.Context, roomCode, username string) ([]Record, error) {
	fields, err := s.client.HGetAll(ctx, swipeKey(roomCode, username)).Result()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load player swipes")
	}
	out := make([]Record, 0, len(fields))
	for _, raw := range fields {
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, eris.Wrap(err, "failed to decode swipe record")
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) GetRoomSwipes(ctx context.Context, roomCode string) ([]Record, error) {
	players, err := s.client.SMembers(ctx, roomPlayersKey(roomCode)).Result()
	if err != nil {
		return nil, eris.Wrap(err, "failed to list room players")
	}
	out := []Record{}
	for _, username := range players {
		recs, err := s.GetPlayerSwipes(ctx, roomCode, username)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

func (s *RedisStore) ClearRoomData(ctx context.Context, roomCode string) error {
	players, err := s.client.SMembers(ctx, roomPlayersKey(roomCode)).Result()
	if err != nil {
		return eris.Wrap(err, "failed to list room players")
	}
	keys := make([]string, 0, len(players)+1)
	for _, username := range players {
		keys = append(keys, swipeKey(roomCode, username))
	}
	keys = append(keys, roomPlayersKey(roomCode))
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return eris.Wrap(err, "failed to clear room swipes")
	}
	return nil
}
