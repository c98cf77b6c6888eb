package player

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swipedeck/swipedeck/internal/room"
)

// JoinResult reports the outcome of a join attempt. Failures carry a
// player-facing message and the room's state at the time of the check.
type JoinResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	State   room.State `json:"state"`
}

// DisconnectedPlayerInfo identifies who left and from where. Zero value
// means the connection was unknown.
type DisconnectedPlayerInfo struct {
	Username string `json:"username"`
	RoomCode string `json:"roomCode"`
}

// Manager orchestrates join and leave so the room player lists and the
// connection mappings stay in lockstep.
type Manager struct {
	rooms    *room.Repository
	mappings *MappingRepository
	roomMgr  *room.Manager
}

func NewManager(rooms *room.Repository, mappings *MappingRepository, roomMgr *room.Manager) *Manager {
	return &Manager{rooms: rooms, mappings: mappings, roomMgr: roomMgr}
}

// CreateRoom opens a new room with the caller as host and registers the
// connection mapping.
func (m *Manager) CreateRoom(connID, username string) *room.Room {
	rm := m.roomMgr.CreateRoom(connID, username)
	m.mappings.AddPlayer(connID, username, rm.Code)
	return rm
}

// JoinRoom admits the player into the room if it exists, has a free slot,
// has not started, and the username is free. The capacity check and the
// append are serialized per room inside Admit; joins to different rooms do
// not contend.
func (m *Manager) JoinRoom(roomCode, connID, username string) JoinResult {
	rm, ok := m.rooms.GetRoom(roomCode)
	if !ok {
		return JoinResult{Success: false, Message: "Room not found"}
	}

	p := &room.Player{
		ConnectionID: connID,
		Username:     username,
		JoinedAt:     time.Now().UTC(),
	}
	ok, msg, state := rm.Admit(p)
	if !ok {
		return JoinResult{Success: false, Message: msg, State: state}
	}

	m.mappings.AddPlayer(connID, username, roomCode)
	log.Info().Str("code", roomCode).Str("username", username).Str("state", string(state)).Msg("player joined")
	return JoinResult{Success: true, State: state}
}

// RemovePlayer handles a departure or disconnect: drop the mapping, drop
// the player from the room, then transfer the host before cleaning up an
// emptied room. Unknown connections return an empty info, not an error.
func (m *Manager) RemovePlayer(connID string) DisconnectedPlayerInfo {
	found, roomCode, username := m.mappings.RemovePlayer(connID)
	if !found {
		return DisconnectedPlayerInfo{}
	}

	if rm, ok := m.rooms.GetRoom(roomCode); ok {
		rm.RemovePlayer(username)
		m.roomMgr.TransferHostIfNeeded(rm, username)
		m.roomMgr.CleanupEmptyRoom(roomCode)
	}
	log.Info().Str("code", roomCode).Str("username", username).Msg("player removed")
	return DisconnectedPlayerInfo{Username: username, RoomCode: roomCode}
}
