package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/store"
)

type TopicHandler struct {
	db *gorm.DB
}

func NewTopicHandler(db *gorm.DB) *TopicHandler {
	return &TopicHandler{db: db}
}

// Create adds a content topic (admin only). Topic ids are caller-chosen, so
// reuse is a conflict, never an overwrite; the store relies on the primary
// key to answer that atomically.
func (h *TopicHandler) Create(c *gin.Context) {
	var input models.TopicCreateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topic := models.ContentTopic{ID: input.ID, Description: input.Description}
	if err := store.CreateTopic(h.db, &topic); err != nil {
		respondError(c, err, "Content topic already exists")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": topic.ID})
}

// Delete removes a topic and cascades to its contents.
func (h *TopicHandler) Delete(c *gin.Context) {
	var topic models.ContentTopic
	if err := h.db.First(&topic, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content topic not found"})
		return
	}

	if err := h.db.Delete(&topic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete topic"})
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns all topics.
func (h *TopicHandler) List(c *gin.Context) {
	var topics []models.ContentTopic
	if err := h.db.Order("id asc").Find(&topics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch topics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
