package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/internal/workflow"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor builds the acting identity from the auth middleware context
func currentActor(c *gin.Context) (service.Actor, bool) {
	userID, _ := c.Get("userID")
	userIDStr, _ := userID.(string)

	id, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid actor identity"))
		return service.Actor{}, false
	}

	role, _ := c.Get("userRole")
	roleStr, _ := role.(string)

	return service.Actor{ID: id, Role: roleStr}, true
}

// statusForError maps workflow errors to HTTP status codes. The distinct
// codes matter: a client must be able to tell "someone already decided this"
// (409) apart from "you may not decide this" (403) and "this request cannot
// move that way" (422).
func statusForError(err error) int {
	switch {
	case errors.Is(err, workflow.ErrNotFound), errors.Is(err, workflow.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrIllegalTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrSideEffectFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError renders the standard error envelope for a workflow error
func abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	c.JSON(status, response.Error(status, err.Error()))
}
