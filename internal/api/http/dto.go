package http

// PlayerSeat is one roster entry of /sessions.
type PlayerSeat struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Bot       bool   `json:"bot"`
}

// CreateSessionRequest represents the payload for POST /sessions.
type CreateSessionRequest struct {
	SessionID string       `json:"session_id"`
	Players   []PlayerSeat `json:"players" binding:"required"`
	// Seed makes the solution and the deal reproducible.
	Seed *uint64 `json:"seed"`
}

// MoveRequest represents a move. Without destination the options are returned.
type MoveRequest struct {
	PlayerID    string `json:"player_id" binding:"required"`
	Destination string `json:"destination"`
}

type SuggestRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Suspect  string `json:"suspect" binding:"required"`
	Weapon   string `json:"weapon" binding:"required"`
}

type DisproveRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	CardName string `json:"card_name" binding:"required"`
}

type AccuseRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Suspect  string `json:"suspect" binding:"required"`
	Weapon   string `json:"weapon" binding:"required"`
	Room     string `json:"room" binding:"required"`
}

type EndTurnRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

// ErrorResponse is the body of every rejection.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
