package player

import "github.com/swipedeck/swipedeck/internal/room"

// QueryService provides read-only lookups for the transport layer. Unknown
// rooms and connections yield empty values, never errors.
type QueryService struct {
	rooms    *room.Repository
	mappings *MappingRepository
}

func NewQueryService(rooms *room.Repository, mappings *MappingRepository) *QueryService {
	return &QueryService{rooms: rooms, mappings: mappings}
}

func (q *QueryService) GetRoomInfo(code string) (*room.Room, bool) {
	return q.rooms.GetRoom(code)
}

func (q *QueryService) GetRoomPlayerUsernames(code string) []string {
	rm, ok := q.rooms.GetRoom(code)
	if !ok {
		return []string{}
	}
	return rm.PlayerUsernames()
}

func (q *QueryService) GetPlayerUsername(connID string) string {
	return q.mappings.GetPlayerUsername(connID)
}
