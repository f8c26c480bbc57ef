package shared

// Event is a notification produced by a session action. An empty To means every
// subscriber of the session receives it; otherwise only connections of that player do.
type Event struct {
	Type string `json:"type"`
	To   string `json:"-"`
	Data any    `json:"data,omitempty"`
}

func (e Event) Private() bool { return e.To != "" }

func Public(typ string, data any) Event {
	return Event{Type: typ, Data: data}
}

func PrivateTo(playerID, typ string, data any) Event {
	return Event{Type: typ, To: playerID, Data: data}
}

// Event types.
const (
	EventGameStarted     = "game_started"
	EventGameState       = "game_state"
	EventMoveOptions     = "move_options"
	EventPlayerMoved     = "player_moved"
	EventPlayerRelocated = "player_relocated"
	EventSuggestionMade  = "suggestion_made"
	EventDisprovePrompt  = "disprove_prompt"
	EventDisprovePending = "disprove_pending"
	EventDisproofResult  = "disproof_result"
	EventCardShown       = "card_shown"
	EventNoDisproof      = "no_disproof"
	EventAccusation      = "accusation"
	EventEliminated      = "player_eliminated"
	EventTurnAdvanced    = "turn_advanced"
	EventGameOver        = "game_over"
	EventError           = "error"
)

// Inbound is a client action as sent over the websocket.
type Inbound struct {
	Type        string `json:"type"`
	PlayerID    string `json:"player_id"`
	Destination string `json:"destination,omitempty"`
	Suspect     string `json:"suspect,omitempty"`
	Weapon      string `json:"weapon,omitempty"`
	Room        string `json:"room,omitempty"`
	CardName    string `json:"card_name,omitempty"`
}

// Inbound action types.
const (
	ActionMove       = "make_move"
	ActionSuggest    = "make_suggestion"
	ActionDisprove   = "choose_disproving_card"
	ActionAccuse     = "make_accusation"
	ActionEndTurn    = "end_turn"
	ActionGetState   = "get_state"
	ActionGetOptions = "get_move_options"
)
