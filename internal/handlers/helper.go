package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizhive/quiz-service/internal/services"
)

// ParseIDParam extracts and validates a UUID path parameter. On failure it
// writes a 400 response and returns false.
func ParseIDParam(c *gin.Context, h *BaseHandler, name string) (string, bool) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" parameter", err)
		return "", false
	}
	return value, true
}

// PlayerIDFromRequest resolves the acting player from the X-Player-ID header.
// Identity verification lives upstream; this service only needs a stable id
// to enforce attempt ownership.
func PlayerIDFromRequest(c *gin.Context, h *BaseHandler) (string, bool) {
	playerID := c.GetHeader("X-Player-ID")
	if playerID == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Missing X-Player-ID header", nil)
		return "", false
	}
	if _, err := uuid.Parse(playerID); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid X-Player-ID header", err)
		return "", false
	}
	return playerID, true
}

// HandleServiceError maps service layer errors to HTTP status codes with a
// consistent response shape.
func HandleServiceError(c *gin.Context, h *BaseHandler, err error, operation string) {
	switch {
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case services.IsPermission(err):
		h.RespondWithError(c, http.StatusForbidden, "Permission denied", err)
	case services.IsInvalidState(err):
		h.RespondWithError(c, http.StatusConflict, err.Error(), err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, err.Error(), err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to "+operation, err)
	}
}
