package room

import (
	"testing"
	"time"
)

func newPlayer(connID, username string) *Player {
	return &Player{ConnectionID: connID, Username: username, JoinedAt: time.Now().UTC()}
}

func TestNewRoomStartsWaitingWithHost(t *testing.T) {
	rm := New("1234", 4, newPlayer("c1", "Alice"))
	if rm.State() != StateWaitingForPlayers {
		t.Fatalf("expected state %s, got %s", StateWaitingForPlayers, rm.State())
	}
	if rm.Host() != "Alice" {
		t.Fatalf("expected host Alice, got %s", rm.Host())
	}
	if rm.PlayerCount() != 1 {
		t.Fatalf("expected 1 player, got %d", rm.PlayerCount())
	}
}

func TestAdmitChecksRunInOrder(t *testing.T) {
	rm := New("1234", 2, newPlayer("c1", "Alice"))

	// duplicate name rejected while waiting
	ok, msg, _ := rm.Admit(newPlayer("c2", "Alice"))
	if ok {
		t.Fatal("duplicate username should be rejected")
	}
	if msg != "Username is already taken" {
		t.Fatalf("unexpected message: %s", msg)
	}

	// second slot fills the room and flips the state
	ok, _, state := rm.Admit(newPlayer("c2", "Bob"))
	if !ok {
		t.Fatal("join should succeed")
	}
	if state != StateInProgress {
		t.Fatalf("filling the room should flip to InProgress, got %s", state)
	}

	// full beats "already started" in the failure ordering
	ok, msg, state = rm.Admit(newPlayer("c3", "Carol"))
	if ok {
		t.Fatal("join into a full room should fail")
	}
	if msg != "Room is full" {
		t.Fatalf("expected Room is full, got %s", msg)
	}
	if state != StateInProgress {
		t.Fatalf("failure should report current state, got %s", state)
	}
}

func TestAdmitRejectsStartedRoom(t *testing.T) {
	rm := New("1234", 3, newPlayer("c1", "Alice"))
	rm.TryFinish()
	ok, msg, _ := rm.Admit(newPlayer("c2", "Bob"))
	if ok {
		t.Fatal("join into a finished room should fail")
	}
	if msg != "Game has already started" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestCapacityInvariant(t *testing.T) {
	rm := New("1234", 2, newPlayer("c1", "Alice"))
	rm.Admit(newPlayer("c2", "Bob"))
	rm.Admit(newPlayer("c3", "Carol"))
	if rm.PlayerCount() > rm.MaxPlayers {
		t.Fatalf("player count %d exceeds max %d", rm.PlayerCount(), rm.MaxPlayers)
	}
}

func TestRemovePlayerAndHostTransfer(t *testing.T) {
	rm := New("1234", 4, newPlayer("c1", "Alice"))
	rm.Admit(newPlayer("c2", "Bob"))
	rm.Admit(newPlayer("c3", "Carol"))

	// non-host leaving does not touch the host
	if !rm.RemovePlayer("Carol") {
		t.Fatal("expected removal to succeed")
	}
	if _, transferred := rm.TransferHostIfNeeded("Carol"); transferred {
		t.Fatal("non-host departure should not transfer")
	}
	if rm.Host() != "Alice" {
		t.Fatalf("host should stay Alice, got %s", rm.Host())
	}

	// host leaving hands off to the next player in join order
	rm.RemovePlayer("Alice")
	newHost, transferred := rm.TransferHostIfNeeded("Alice")
	if !transferred {
		t.Fatal("host departure should transfer")
	}
	if newHost != "Bob" {
		t.Fatalf("expected new host Bob, got %s", newHost)
	}

	// emptying the room leaves the host alone
	rm.RemovePlayer("Bob")
	if _, transferred := rm.TransferHostIfNeeded("Bob"); transferred {
		t.Fatal("empty room should not transfer host")
	}
	if !rm.IsEmpty() {
		t.Fatal("room should be empty")
	}
}

func TestSetReady(t *testing.T) {
	rm := New("1234", 4, newPlayer("c1", "Alice"))
	if !rm.SetReady("Alice", true) {
		t.Fatal("expected SetReady to find Alice")
	}
	if rm.SetReady("Nobody", true) {
		t.Fatal("unknown player should not be marked ready")
	}
	players := rm.Players()
	if len(players) != 1 || !players[0].IsReady {
		t.Fatal("ready flag should be visible in the snapshot")
	}
}

func TestPlayersReturnsSnapshotCopy(t *testing.T) {
	rm := New("1234", 4, newPlayer("c1", "Alice"))
	snapshot := rm.Players()
	snapshot[0].IsReady = true
	if rm.Players()[0].IsReady {
		t.Fatal("mutating the snapshot should not affect the room")
	}
}
