package game

import (
	"errors"
	"fmt"
)

// Error is a structured rejection. Code is stable and machine readable, Message is
// meant for display. Two errors are the same (errors.Is) when their codes match.
type Error struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Withf returns a copy of e carrying a more specific message.
func (e *Error) Withf(format string, args ...any) *Error {
	return &Error{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts the structured error from err. Anything else is reported as
// an internal error carrying err's text.
func AsError(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return &Error{Code: "Internal", Message: err.Error()}
}

func newError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Gameplay rejections. None of them leave partial state behind.
var (
	ErrNotYourTurn            = newError("NotYourTurn", "not your turn")
	ErrInvalidDestination     = newError("InvalidDestination", "invalid destination")
	ErrHallwayOccupied        = newError("HallwayOccupied", "hallway is occupied")
	ErrIllegalMove            = newError("IllegalMove", "illegal move")
	ErrPlayerEliminated       = newError("PlayerEliminated", "player has been eliminated")
	ErrNoPendingDisproof      = newError("NoPendingDisproof", "no suggestion is waiting to be disproved")
	ErrNotDesignatedDisprover = newError("NotDesignatedDisprover", "you are not the player asked to disprove")
	ErrCardNotInHand          = newError("CardNotInHand", "card cannot be used to disprove")
	ErrGameAlreadyOver        = newError("GameAlreadyOver", "game is already over")
	ErrUnknownPlayer          = newError("UnknownPlayer", "player is not part of this session")
	ErrAwaitingDisproof       = newError("AwaitingDisproof", "waiting for a suggestion to be disproved")
	ErrMustMoveFirst          = newError("MustMoveFirst", "you must move first")
	ErrNotInRoom              = newError("NotInRoom", "suggestions can only be made from a room")
	ErrAlreadySuggested       = newError("AlreadySuggested", "you already made a suggestion this turn")
	ErrSuggestionRequired     = newError("SuggestionRequired", "you entered a room and must make a suggestion")
	ErrUnknownCard            = newError("UnknownCard", "unknown card")
)

// Session lifecycle and startup errors.
var (
	ErrSessionNotFound           = newError("SessionNotFound", "session not found")
	ErrSessionExists             = newError("SessionExists", "session already exists")
	ErrMissingCharacterSelection = newError("MissingCharacterSelection", "every player must choose a character")
	ErrInvalidRoster             = newError("InvalidRoster", "invalid roster")
	ErrBoardDataInconsistent     = newError("BoardDataInconsistent", "board data is inconsistent")
)
