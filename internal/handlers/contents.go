package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/query"
	"github.com/sadi-dev/skillhub/backend/internal/store"
)

type ContentHandler struct {
	db *gorm.DB
}

func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{db: db}
}

// parsePaging validates page/size before anything reaches the core, which
// assumes sanitized non-negative inputs.
func parsePaging(c *gin.Context) (page, size int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be a positive integer"})
		return 0, 0, false
	}
	return page, size, true
}

// parseDateRange reads start_date/end_date as calendar dates in the given
// zone; the end bound is pushed to the end of its day so the range stays
// inclusive.
func parseDateRange(c *gin.Context) (start, end *time.Time, ok bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" && endStr == "" {
		return nil, nil, true
	}
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date must be given together"})
		return nil, nil, false
	}

	loc, err := time.LoadLocation(c.DefaultQuery("zone_id", "Asia/Dhaka"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown zone_id"})
		return nil, nil, false
	}

	startDay, err := time.ParseInLocation("2006-01-02", startStr, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return nil, nil, false
	}
	endDay, err := time.ParseInLocation("2006-01-02", endStr, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return nil, nil, false
	}
	endOfDay := endDay.Add(24*time.Hour - time.Nanosecond)
	return &startDay, &endOfDay, true
}

func parseContentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content id"})
		return uuid.Nil, false
	}
	return id, true
}

// List returns a filtered, sorted page of contents. The viewer's vote on
// each row rides along when the request is authenticated.
func (h *ContentHandler) List(c *gin.Context) {
	page, size, ok := parsePaging(c)
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	criteria := query.ContentCriteria{
		StartDate:  start,
		EndDate:    end,
		AuthorID:   c.Query("author_id"),
		Title:      c.Query("title"),
		AuthorName: c.Query("author_name"),
		TopicID:    c.Query("topic_id"),
		SortBy:     query.ContentSort(c.DefaultQuery("sort_by", string(query.ContentSortVotes))),
		Direction:  query.Direction(c.DefaultQuery("direction", string(query.Descending))),
	}

	spec, err := criteria.Compose()
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	result, err := store.ListContents(h.db, spec, c.GetString("user_id"), page, size)
	if err != nil {
		respondError(c, err, "Failed to fetch contents")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns a single content with author info and the viewer's vote id.
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}

	content, err := store.GetContent(h.db, id, c.GetString("user_id"))
	if err != nil {
		respondError(c, err, "Content not found")
		return
	}

	c.JSON(http.StatusOK, content)
}

// Create creates a new content (admin only).
func (h *ContentHandler) Create(c *gin.Context) {
	var input models.ContentCreateUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var topic models.ContentTopic
	if err := h.db.First(&topic, "id = ?", input.TopicID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content topic not found"})
		return
	}

	content := models.Content{
		UserID:     c.GetString("user_id"),
		TopicID:    topic.ID,
		Title:      input.Title,
		Body:       input.Body,
		CoverPhoto: input.CoverPhoto,
		Summary:    input.Summary,
	}

	if err := h.db.Create(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": content.ID})
}

// Update edits an existing content (admin only, owner enforced).
func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}

	var input models.ContentCreateUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := store.FindContent(h.db, id)
	if err != nil {
		respondError(c, err, "Content not found")
		return
	}

	callerID, isAdmin := callerIdentity(c)
	if err := RequireOwner(content.UserID, callerID, isAdmin); err != nil {
		respondError(c, err, "You don't have write permission of this content")
		return
	}

	var topic models.ContentTopic
	if err := h.db.First(&topic, "id = ?", input.TopicID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content topic not found"})
		return
	}

	content.Title = input.Title
	content.Body = input.Body
	content.CoverPhoto = input.CoverPhoto
	content.Summary = input.Summary
	content.TopicID = topic.ID

	if err := h.db.Save(content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a content and, through the FK cascade, its votes.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}

	content, err := store.FindContent(h.db, id)
	if err != nil {
		respondError(c, err, "Content not found")
		return
	}

	callerID, isAdmin := callerIdentity(c)
	if err := RequireOwner(content.UserID, callerID, isAdmin); err != nil {
		respondError(c, err, "You don't have write permission of this content")
		return
	}

	if err := h.db.Delete(content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Vote toggles the caller's vote on a content and returns the applied delta.
func (h *ContentHandler) Vote(c *gin.Context) {
	id, ok := parseContentID(c)
	if !ok {
		return
	}

	delta, err := store.ToggleVote(h.db, id, c.GetString("user_id"))
	if err != nil {
		respondError(c, err, "Content not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"vote": delta})
}
