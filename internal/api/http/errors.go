package http

import (
	"errors"
	"net/http"

	"clueless/internal/game"

	"github.com/gin-gonic/gin"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidRoster),
		errors.Is(err, game.ErrMissingCharacterSelection),
		errors.Is(err, game.ErrBoardDataInconsistent):
		return http.StatusBadRequest
	}
	var ge *game.Error
	if errors.As(err, &ge) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	ge := game.AsError(err)
	c.JSON(statusOf(err), ErrorResponse{Error: ge.Code, Message: ge.Message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "BadRequest", Message: err.Error()})
}
