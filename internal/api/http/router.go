package http

import (
	"net/http"
	"time"

	"clueless/internal/api/ws"
	"clueless/internal/config"
	"clueless/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// WebSocket for live play
	r.GET("/ws", hub.HandleWS)

	// --- SESSION ENDPOINTS ---
	r.POST("/sessions", CreateSessionHandler(rm))
	r.GET("/sessions", ListSessionsHandler(rm))
	r.GET("/sessions/:id/state", StateHandler(rm))
	r.DELETE("/sessions/:id", DeleteSessionHandler(rm))

	// --- GAME ENDPOINTS ---
	r.GET("/sessions/:id/options", OptionsHandler(rm))
	r.POST("/sessions/:id/move", MoveHandler(rm))
	r.POST("/sessions/:id/suggest", SuggestHandler(rm))
	r.POST("/sessions/:id/disprove", DisproveHandler(rm))
	r.POST("/sessions/:id/accuse", AccuseHandler(rm))
	r.POST("/sessions/:id/end-turn", EndTurnHandler(rm))
	if cfg.Debug {
		r.GET("/sessions/:id/solution", SolutionHandler(rm))
	}

	// --- CONFIG ENDPOINTS ---
	r.GET("/board", BoardHandler(rm.Data()))
	r.GET("/config/bots", BotConfigHandler(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	}
}
