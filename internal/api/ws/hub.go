package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"clueless/internal/game"
	"clueless/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub keeps the websocket connections of every session and implements
// room.Broadcaster for them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*client]struct{}
	manager  SessionManager
	upgrader websocket.Upgrader
}

func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{sessions: make(map[string]map[*client]struct{})}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// SetManager wires the hub to the session manager. The manager in turn has the
// hub as a broadcaster, so one of them has to be set after construction.
func (h *Hub) SetManager(m SessionManager) {
	h.manager = m
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// HandleWS upgrades GET /ws?session_id=&player_id= and serves the connection
// until the client leaves.
func (h *Hub) HandleWS(c *gin.Context) {
	sessionID := c.Query("session_id")
	playerID := c.Query("player_id")
	if sessionID == "" || playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BadRequest", "message": "session_id and player_id are required"})
		return
	}
	view, err := h.manager.View(sessionID, playerID)
	if err != nil {
		ge := game.AsError(err)
		c.JSON(http.StatusNotFound, ge)
		return
	}
	if view.You == nil {
		c.JSON(http.StatusForbidden, game.ErrUnknownPlayer)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("ws upgrade failed")
		return
	}
	cl := &client{
		conn:      conn,
		sessionID: sessionID,
		playerID:  playerID,
		send:      make(chan []byte, sendBuffer),
	}
	h.register(cl)
	log.Info().Str("session", sessionID).Str("player", playerID).Msg("ws connected")
	go cl.writePump()

	h.push(cl, encode(shared.EventGameState, view))
	h.readLoop(cl)

	h.unregister(cl)
	log.Info().Str("session", sessionID).Str("player", playerID).Msg("ws disconnected")
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[cl.sessionID]; !ok {
		h.sessions[cl.sessionID] = make(map[*client]struct{})
	}
	h.sessions[cl.sessionID][cl] = struct{}{}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.sessions[cl.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[cl]; ok {
		delete(clients, cl)
		close(cl.send)
	}
	if len(clients) == 0 {
		delete(h.sessions, cl.sessionID)
	}
}

// push queues a frame for a registered client.
func (h *Hub) push(cl *client, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.sessions[cl.sessionID][cl]; ok {
		h.enqueue(cl, msg)
	}
}

// enqueue must run under h.mu. A client whose queue is full is too slow and
// gets dropped.
func (h *Hub) enqueue(cl *client, msg []byte) {
	if msg == nil {
		return
	}
	select {
	case cl.send <- msg:
	default:
		log.Warn().Str("session", cl.sessionID).Str("player", cl.playerID).Msg("ws client too slow, dropping")
		go h.unregister(cl)
	}
}

// Broadcast delivers ev to the session's connections: everybody for public events,
// only the addressed player's connections for private ones.
func (h *Hub) Broadcast(sessionID string, ev shared.Event) {
	msg := encode(ev.Type, ev.Data)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.sessions[sessionID] {
		if ev.Private() && cl.playerID != ev.To {
			continue
		}
		h.enqueue(cl, msg)
	}
}

// Connections reports how many sockets are open for a session.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) readLoop(cl *client) {
	cl.conn.SetReadLimit(maxMessage)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("player", cl.playerID).Msg("ws read failed")
			}
			return
		}
		var in shared.Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			h.sendError(cl, &game.Error{Code: "BadRequest", Message: "malformed message"})
			continue
		}
		h.dispatch(cl, in)
	}
}

// dispatch runs one inbound action. The acting player is always the one bound
// to the connection.
func (h *Hub) dispatch(cl *client, in shared.Inbound) {
	ctx := context.Background()
	var err error
	switch in.Type {
	case shared.ActionMove:
		_, err = h.manager.Move(ctx, cl.sessionID, cl.playerID, in.Destination)
	case shared.ActionSuggest:
		_, err = h.manager.Suggest(ctx, cl.sessionID, cl.playerID, in.Suspect, in.Weapon)
	case shared.ActionDisprove:
		_, err = h.manager.Disprove(ctx, cl.sessionID, cl.playerID, in.CardName)
	case shared.ActionAccuse:
		_, err = h.manager.Accuse(ctx, cl.sessionID, cl.playerID, in.Suspect, in.Weapon, in.Room)
	case shared.ActionEndTurn:
		_, err = h.manager.EndTurn(ctx, cl.sessionID, cl.playerID)
	case shared.ActionGetState:
		v, verr := h.manager.View(cl.sessionID, cl.playerID)
		if verr != nil {
			h.sendError(cl, verr)
			return
		}
		h.push(cl, encode(shared.EventGameState, v))
		return
	case shared.ActionGetOptions:
		opts, oerr := h.manager.MoveOptions(cl.sessionID, cl.playerID)
		if oerr != nil {
			h.sendError(cl, oerr)
			return
		}
		h.push(cl, encode(shared.EventMoveOptions, gin.H{"player_id": cl.playerID, "options": opts}))
		return
	default:
		h.sendError(cl, &game.Error{Code: "UnknownAction", Message: "unknown message type " + in.Type})
		return
	}
	if err != nil {
		h.sendError(cl, err)
		return
	}
	h.manager.TriggerBots(cl.sessionID)
}

func (h *Hub) sendError(cl *client, err error) {
	h.push(cl, encode(shared.EventError, game.AsError(err)))
}
