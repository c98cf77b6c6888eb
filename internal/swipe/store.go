package swipe

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownStatement is returned when a swipe references a statement ID
// that is not in the catalog.
var ErrUnknownStatement = errors.New("unknown statement")

// Record is one player's agree/disagree answer to one statement in one
// room. A later swipe on the same (room, player, statement) replaces the
// earlier one.
type Record struct {
	RoomCode      string    `json:"roomCode"`
	Username      string    `json:"username"`
	StatementID   string    `json:"statementId"`
	StatementText string    `json:"statementText"`
	Agree         bool      `json:"agree"`
	SwipedAt      time.Time `json:"swipedAt"`
}

// Store persists swipe records. Implementations must be safe for
// concurrent use; independent players' swipes never block each other.
type Store interface {
	// SaveSwipe upserts the record for (roomCode, username, statementID).
	// Returns ErrUnknownStatement if the statement is not in the catalog.
	SaveSwipe(ctx context.Context, roomCode, username, statementID string, agree bool) error
	GetPlayerSwipes(ctx context.Context, roomCode, username string) ([]Record, error)
	GetRoomSwipes(ctx context.Context, roomCode string) ([]Record, error)
	// ClearRoomData deletes every swipe record for the room. Game history
	// already written is unaffected.
	ClearRoomData(ctx context.Context, roomCode string) error
}
