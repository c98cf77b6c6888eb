package room

import (
	"sync"
	"time"
)

type State string

const (
	StateWaitingForPlayers State = "WaitingForPlayers"
	StateInProgress        State = "InProgress"
	StateFinished          State = "Finished"
)

type Player struct {
	ConnectionID string    `json:"connectionId"`
	Username     string    `json:"username"`
	JoinedAt     time.Time `json:"joinedAt"`
	IsReady      bool      `json:"isReady"`
}

// Room is a bounded group of players identified by a short code. All
// mutable fields are guarded by mu; reads go through the accessor methods
// so callers never see a half-updated player list.
type Room struct {
	Code       string
	MaxPlayers int
	CreatedAt  time.Time

	mu      sync.Mutex
	host    string
	players []*Player
	state   State
	retired bool
}

func New(code string, maxPlayers int, host *Player) *Room {
	return &Room{
		Code:       code,
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now().UTC(),
		host:       host.Username,
		players:    []*Player{host},
		state:      StateWaitingForPlayers,
	}
}

func (r *Room) Host() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host
}

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Room) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) == 0
}

// Players returns a snapshot copy in join order.
func (r *Room) Players() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (r *Room) PlayerUsernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.players))
	for _, p := range r.players {
		names = append(names, p.Username)
	}
	return names
}

// Admit evaluates join eligibility and appends the player while holding the
// room lock, so the capacity check and the append are one atomic step.
// Checks run in order: full, already started, username taken. Usernames are
// compared exactly (case-sensitive). Reaching capacity flips the room to
// InProgress before Admit returns.
func (r *Room) Admit(p *Player) (ok bool, message string, state State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.retired {
		return false, "Room not found", r.state
	}
	if len(r.players) >= r.MaxPlayers {
		return false, "Room is full", r.state
	}
	if r.state != StateWaitingForPlayers {
		return false, "Game has already started", r.state
	}
	for _, existing := range r.players {
		if existing.Username == p.Username {
			return false, "Username is already taken", r.state
		}
	}

	r.players = append(r.players, p)
	if len(r.players) >= r.MaxPlayers {
		r.state = StateInProgress
	}
	return true, "", r.state
}

// RemovePlayer drops the named player from the list. Returns whether a
// player was removed.
func (r *Room) RemovePlayer(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.players {
		if p.Username == username {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

// TransferHostIfNeeded reassigns the host to the first remaining player in
// join order when the departed player was the host. Empty rooms are left
// alone; the stale host value is never consulted once the room is empty.
func (r *Room) TransferHostIfNeeded(departedUsername string) (newHost string, transferred bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.host != departedUsername || len(r.players) == 0 {
		return "", false
	}
	r.host = r.players[0].Username
	return r.host, true
}

// SetReady flips the ready flag for the named player.
func (r *Room) SetReady(username string, ready bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Username == username {
			p.IsReady = ready
			return true
		}
	}
	return false
}

// TryFinish transitions the room to Finished and reports whether this
// caller won the transition. Exactly one caller wins per game, so
// finalization (history write, stats fan-out) runs once even when several
// completion checks race. The state never reverts.
func (r *Room) TryFinish() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateFinished {
		return false
	}
	r.state = StateFinished
	return true
}

// retire marks an empty room dead so late joiners holding a stale pointer
// are turned away. Fails if a player slipped in first. Called with the
// repository lock held.
func (r *Room) retire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.players) > 0 {
		return false
	}
	r.retired = true
	return true
}
