package ws

import (
	"context"

	"clueless/internal/room"
)

// SessionManager is what the hub needs from room.Manager.
type SessionManager interface {
	View(id, viewerID string) (room.StateView, error)
	MoveOptions(id, playerID string) ([]room.Option, error)
	Move(ctx context.Context, id, playerID, destination string) (room.MoveResult, error)
	Suggest(ctx context.Context, id, playerID, suspect, weapon string) (room.SuggestResult, error)
	Disprove(ctx context.Context, id, playerID, card string) (room.DisproveResult, error)
	Accuse(ctx context.Context, id, playerID, suspect, weapon, roomName string) (room.AccuseResult, error)
	EndTurn(ctx context.Context, id, playerID string) (room.EndTurnResult, error)
	TriggerBots(id string)
}
