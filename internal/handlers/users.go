package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/store"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// UpdateInfo updates the caller's own profile fields.
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	var input models.UserInfoUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.ProfilePicture != "" {
		user.ProfilePicture = input.ProfilePicture
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetInfo returns a user's profile with their current leaderboard rank.
// Without ?user_id it describes the caller.
func (h *UserHandler) GetInfo(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		userID = c.GetString("user_id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	rank, err := store.RankOf(h.db, userID)
	if err != nil {
		respondError(c, err, "Failed to compute rank")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"full_name":       user.FullName,
		"role":            user.Role,
		"email":           user.Email,
		"profile_picture": user.ProfilePicture,
		"credit":          user.Credit,
		"score":           user.Score,
		"rank":            rank,
	})
}

// Leaderboard returns one page of the global ranking.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	page, size, ok := parsePaging(c)
	if !ok {
		return
	}

	result, err := store.Leaderboard(h.db, page, size)
	if err != nil {
		respondError(c, err, "Failed to fetch leaderboard")
		return
	}

	c.JSON(http.StatusOK, result)
}
