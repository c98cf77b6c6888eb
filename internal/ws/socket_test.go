package ws

import (
	"context"
	"sync"
	"testing"

	"github.com/swipedeck/swipedeck/internal/compat"
	"github.com/swipedeck/swipedeck/internal/config"
	"github.com/swipedeck/swipedeck/internal/history"
	"github.com/swipedeck/swipedeck/internal/player"
	"github.com/swipedeck/swipedeck/internal/room"
	"github.com/swipedeck/swipedeck/internal/statement"
	"github.com/swipedeck/swipedeck/internal/stats"
	"github.com/swipedeck/swipedeck/internal/swipe"
)

type testStack struct {
	srv   *Server
	coord *compat.Coordinator
	hist  *history.MemoryStore
	sink  *stats.MemorySink
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	catalog := statement.NewCatalog([]statement.Statement{
		{ID: "s1", Text: "Pineapple belongs on pizza", Topic: "food"},
		{ID: "s2", Text: "Camping beats hotels", Topic: "travel"},
	})
	repo := room.NewRepository()
	mappings := player.NewMappingRepository()
	roomMgr := room.NewManager(repo, room.NewCodeGenerator(), 2)
	pm := player.NewManager(repo, mappings, roomMgr)
	qs := player.NewQueryService(repo, mappings)

	store := swipe.NewMemoryStore(catalog)
	calc := compat.NewCalculator(store)
	hist := history.NewMemoryStore()
	sink := stats.NewMemorySink()
	coord := compat.NewCoordinator(store, calc, catalog, hist, sink)

	cfg := config.Config{StatementsPerGame: 2, MaxPlayers: 2}
	return &testStack{
		srv:   New(pm, qs, coord, calc, sink, cfg),
		coord: coord,
		hist:  hist,
		sink:  sink,
	}
}

// Two callers can both see the room as complete before either finalizes:
// the last two swipes land back to back, or the host hits finish while the
// auto-finish is running. Only one of them may persist the game.
func TestFinishGameRunsOnce(t *testing.T) {
	st := newTestStack(t)
	ctx := context.Background()

	rm := st.srv.players.CreateRoom("conn-a", "Alice")
	if res := st.srv.players.JoinRoom(rm.Code, "conn-b", "Bob"); !res.Success {
		t.Fatalf("join failed: %s", res.Message)
	}

	usernames := []string{"Alice", "Bob"}
	statements := st.coord.GetRoomStatements(rm.Code, nil, 2)
	for _, u := range usernames {
		for _, s := range statements {
			if !st.coord.SaveSwipe(ctx, rm.Code, u, s.ID, true) {
				t.Fatalf("swipe for %s on %s was rejected", u, s.ID)
			}
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done, err := st.coord.HaveAllPlayersFinished(ctx, rm.Code, usernames, len(statements))
			if err != nil {
				t.Errorf("completion check failed: %v", err)
				return
			}
			if done {
				st.srv.finishGame(rm.Code, usernames)
			}
		}()
	}
	wg.Wait()

	entries, err := st.hist.ForPlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("history lookup failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(entries))
	}
	for _, u := range usernames {
		got, err := st.sink.GetUserStatistics(ctx, u)
		if err != nil {
			t.Fatalf("statistics lookup for %s failed: %v", u, err)
		}
		if got.TotalGamesPlayed != 1 {
			t.Fatalf("expected %s to have 1 game played, got %d", u, got.TotalGamesPlayed)
		}
	}
	if rm.State() != room.StateFinished {
		t.Fatalf("expected room state %q, got %q", room.StateFinished, rm.State())
	}
}

// A second finish after the game already ended must be a no-op.
func TestFinishGameAfterFinishedIsNoop(t *testing.T) {
	st := newTestStack(t)
	ctx := context.Background()

	rm := st.srv.players.CreateRoom("conn-a", "Alice")
	if res := st.srv.players.JoinRoom(rm.Code, "conn-b", "Bob"); !res.Success {
		t.Fatalf("join failed: %s", res.Message)
	}
	usernames := []string{"Alice", "Bob"}
	for _, s := range st.coord.GetRoomStatements(rm.Code, nil, 2) {
		st.coord.SaveSwipe(ctx, rm.Code, "Alice", s.ID, true)
		st.coord.SaveSwipe(ctx, rm.Code, "Bob", s.ID, false)
	}

	st.srv.finishGame(rm.Code, usernames)
	st.srv.finishGame(rm.Code, usernames)

	entries, err := st.hist.ForPlayer(ctx, "Bob")
	if err != nil {
		t.Fatalf("history lookup failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(entries))
	}
}
