package http

import (
	"net/http"

	"clueless/internal/game"
	"clueless/internal/room"

	"github.com/gin-gonic/gin"
)

// @Summary Create a session
// @Description Start a game from an ordered roster. Roster order is the seating order.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Roster"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions [post]
func CreateSessionHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		roster := make(room.Roster, 0, len(req.Players))
		for _, p := range req.Players {
			roster = append(roster, room.RosterEntry{
				PlayerID:  p.PlayerID,
				Name:      p.Name,
				Character: p.Character,
				Bot:       p.Bot,
			})
		}
		var opts room.Options
		if req.Seed != nil {
			opts.Rand = game.NewRand(*req.Seed)
		}
		rx, err := rm.Create(req.SessionID, roster, opts)
		if err != nil {
			writeError(c, err)
			return
		}
		view, err := rm.View(rx.ID, "")
		if err != nil {
			writeError(c, err)
			return
		}
		rm.TriggerBots(rx.ID)
		c.JSON(http.StatusCreated, gin.H{"success": true, "session_id": rx.ID, "state": view})
	}
}

// @Summary List sessions
// @Tags Session
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sessions [get]
func ListSessionsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sessions": rm.List()})
	}
}

// @Summary Get session state
// @Description Per-viewer projection: only the viewer's own hand and knowledge are included.
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Param player_id query string false "Viewer"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/state [get]
func StateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := rm.View(c.Param("id"), c.Query("player_id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary Remove a session
// @Tags Session
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func DeleteSessionHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rm.Remove(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary Move options of a player
// @Tags Game
// @Produce json
// @Param id path string true "Session ID"
// @Param player_id query string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Router /sessions/{id}/options [get]
func OptionsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := rm.MoveOptions(c.Param("id"), c.Query("player_id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"options": opts})
	}
}

// @Summary Move
// @Description Move to a room or hallway. Without destination the legal options are returned.
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body MoveRequest true "Move"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/move [post]
func MoveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		id := c.Param("id")
		res, err := rm.Move(c.Request.Context(), id, req.PlayerID, req.Destination)
		respond(c, rm, id, res, err)
	}
}

// @Summary Make a suggestion
// @Description Suggest a suspect and weapon in the current room.
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SuggestRequest true "Suggestion"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/suggest [post]
func SuggestHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SuggestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		id := c.Param("id")
		res, err := rm.Suggest(c.Request.Context(), id, req.PlayerID, req.Suspect, req.Weapon)
		respond(c, rm, id, res, err)
	}
}

// @Summary Disprove a suggestion
// @Description Only the designated disprover may call this, with one of the matching cards.
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DisproveRequest true "Card to show"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/disprove [post]
func DisproveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DisproveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		id := c.Param("id")
		res, err := rm.Disprove(c.Request.Context(), id, req.PlayerID, req.CardName)
		respond(c, rm, id, res, err)
	}
}

// @Summary Accuse
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body AccuseRequest true "Accusation"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/accuse [post]
func AccuseHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AccuseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		id := c.Param("id")
		res, err := rm.Accuse(c.Request.Context(), id, req.PlayerID, req.Suspect, req.Weapon, req.Room)
		respond(c, rm, id, res, err)
	}
}

// @Summary End the turn
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body EndTurnRequest true "Player"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/end-turn [post]
func EndTurnHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EndTurnRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		id := c.Param("id")
		res, err := rm.EndTurn(c.Request.Context(), id, req.PlayerID)
		respond(c, rm, id, res, err)
	}
}

// @Summary Reveal the case file
// @Description Only registered when DEBUG is set.
// @Tags Debug
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /sessions/{id}/solution [get]
func SolutionHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sol, err := rm.Solution(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sol)
	}
}

func respond(c *gin.Context, rm *room.Manager, id string, res any, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	rm.TriggerBots(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": res})
}
