package http

import (
	"net/http"

	"clueless/internal/config"
	"clueless/internal/game"

	"github.com/gin-gonic/gin"
)

// @Summary Board layout
// @Description Rooms, hallways and the card pools of the loaded reference data.
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /board [get]
func BoardHandler(data game.ReferenceData) gin.HandlerFunc {
	view := game.NewBoard(data.Board).View()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"board":              view,
			"suspects":           data.Suspects,
			"weapons":            data.Weapons,
			"rooms":              data.Rooms,
			"starting_positions": data.StartingPositions,
		})
	}
}

// @Summary Bot weights
// @Description Weights the bots use to rate move destinations.
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config/bots [get]
func BotConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"weights":  cfg.BotWeights,
			"delay_ms": cfg.BotDelay.Milliseconds(),
		})
	}
}
