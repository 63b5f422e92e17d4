package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
	"github.com/sadi-dev/skillhub/backend/internal/models"
)

// RequireOwner is the single ownership gate used by every entity handler:
// the caller must be the resource owner or an admin.
func RequireOwner(ownerID, callerID string, isAdmin bool) error {
	if callerID == ownerID || isAdmin {
		return nil
	}
	return fmt.Errorf("caller %s does not own this resource: %w", callerID, apperr.ErrForbidden)
}

func callerIdentity(c *gin.Context) (id string, isAdmin bool) {
	return c.GetString("user_id"), c.GetString("role") == models.RoleAdmin
}
