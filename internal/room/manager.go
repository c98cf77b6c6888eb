package room

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Manager owns room creation and teardown.
type Manager struct {
	repo       *Repository
	gen        *CodeGenerator
	maxPlayers int
}

func NewManager(repo *Repository, gen *CodeGenerator, maxPlayers int) *Manager {
	return &Manager{repo: repo, gen: gen, maxPlayers: maxPlayers}
}

// CreateRoom generates a unique code and registers a new room with the host
// as its sole player. The insert is conditional on the code still being
// free, so two concurrent creates drawing the same code cannot clobber
// each other; the loser redraws.
func (m *Manager) CreateRoom(hostConnID, hostUsername string) *Room {
	host := &Player{
		ConnectionID: hostConnID,
		Username:     hostUsername,
		JoinedAt:     time.Now().UTC(),
	}
	for {
		code := m.gen.Generate(m.repo.GetAllRoomCodes())
		rm := New(code, m.maxPlayers, host)
		if m.repo.AddIfAbsent(rm) {
			log.Info().Str("code", code).Str("host", hostUsername).Msg("room created")
			return rm
		}
	}
}

// CleanupEmptyRoom removes the room if it exists and has no players.
// Calling it twice, or for an unknown code, is a no-op.
func (m *Manager) CleanupEmptyRoom(code string) {
	if m.repo.RemoveIfEmpty(code) {
		log.Info().Str("code", code).Msg("empty room removed")
	}
}

// TransferHostIfNeeded reassigns the host when the departed player held it
// and the room still has members.
func (m *Manager) TransferHostIfNeeded(rm *Room, departedUsername string) {
	if newHost, ok := rm.TransferHostIfNeeded(departedUsername); ok {
		log.Info().Str("code", rm.Code).Str("host", newHost).Msg("host transferred")
	}
}

// SweepEmptyRooms removes every empty room and reports how many were
// dropped. Run periodically as a safety net behind the per-departure
// cleanup.
func (m *Manager) SweepEmptyRooms() int {
	count := 0
	for _, rm := range m.repo.GetAllRooms() {
		if m.repo.RemoveIfEmpty(rm.Code) {
			count++
		}
	}
	return count
}
