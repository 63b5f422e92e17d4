package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
)

// respondError maps the core error kinds to HTTP statuses; message is the
// client-facing text for those mapped statuses. Anything outside the taxonomy
// is a server fault and reports a generic error so a failed transaction never
// masquerades as a domain answer.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": message})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": message})
	case errors.Is(err, apperr.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
