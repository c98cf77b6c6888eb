package history

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gotest.tools/v3/assert"
)

func sampleEntry(id, roomCode string, players ...string) Entry {
	return Entry{
		ID:              id,
		RoomCode:        roomCode,
		PlayedDate:      time.Now().UTC(),
		TotalPlayers:    len(players),
		PlayerUsernames: players,
		BestMatchPlayer: players[0] + " & " + players[1],
		AllResults: []PairResult{
			{Player1: players[0], Player2: players[1], MatchingSwipes: 3, TotalStatements: 4},
		},
	}
}

func TestPairResultPercentage(t *testing.T) {
	p := PairResult{MatchingSwipes: 2, TotalStatements: 3}
	if got := p.Percentage(); got != 66.67 {
		t.Fatalf("expected 66.67, got %v", got)
	}
	zero := PairResult{}
	if got := zero.Percentage(); got != 0 {
		t.Fatalf("expected 0 for empty pair, got %v", got)
	}
}

func TestMemoryStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Save(ctx, sampleEntry("e1", "1111", "Alice", "Bob"))
	store.Save(ctx, sampleEntry("e2", "2222", "Alice", "Carol"))

	entries, err := store.ForPlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("ForPlayer failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "e2" || entries[1].ID != "e1" {
		t.Fatalf("expected newest first, got %s then %s", entries[0].ID, entries[1].ID)
	}

	entries, _ = store.ForPlayer(ctx, "Carol")
	if len(entries) != 1 || entries[0].ID != "e2" {
		t.Fatalf("unexpected entries for Carol: %v", entries)
	}
	entries, _ = store.ForPlayer(ctx, "Nobody")
	if len(entries) != 0 {
		t.Fatal("unknown player should have no history")
	}
}

func TestRedisStoreRoundtripNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: s.Addr()}))

	assert.NilError(t, store.Save(ctx, sampleEntry("e1", "1111", "Alice", "Bob")))
	assert.NilError(t, store.Save(ctx, sampleEntry("e2", "2222", "Alice", "Carol")))

	entries, err := store.ForPlayer(ctx, "Alice")
	assert.NilError(t, err)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)

	// the stored pair counts survive the roundtrip
	assert.Equal(t, 3, entries[1].AllResults[0].MatchingSwipes)
	assert.Equal(t, 4, entries[1].AllResults[0].TotalStatements)

	entries, err = store.ForPlayer(ctx, "Bob")
	assert.NilError(t, err)
	assert.Equal(t, 1, len(entries))

	entries, err = store.ForPlayer(ctx, "Nobody")
	assert.NilError(t, err)
	assert.Equal(t, 0, len(entries))
}
