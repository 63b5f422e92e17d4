package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/notify"
	"github.com/sadi-dev/skillhub/backend/internal/query"
	"github.com/sadi-dev/skillhub/backend/internal/store"
)

type ProjectHandler struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewProjectHandler(db *gorm.DB, notifier *notify.Notifier) *ProjectHandler {
	return &ProjectHandler{db: db, notifier: notifier}
}

func parseProjectID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// List returns a filtered, sorted page of projects.
func (h *ProjectHandler) List(c *gin.Context) {
	page, size, ok := parsePaging(c)
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	criteria := query.ProjectCriteria{
		StartDate:  start,
		EndDate:    end,
		AuthorID:   c.Query("author_id"),
		Type:       c.Query("type"),
		Title:      c.Query("title"),
		AuthorName: c.Query("author_name"),
		SortBy:     query.ProjectSort(c.DefaultQuery("sort_by", string(query.ProjectSortPriority))),
		Direction:  query.Direction(c.DefaultQuery("direction", string(query.Descending))),
	}

	spec, err := criteria.Compose()
	if err != nil {
		respondError(c, err, err.Error())
		return
	}

	result, err := store.ListProjects(h.db, spec, page, size)
	if err != nil {
		respondError(c, err, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseProjectID(c, "id")
	if !ok {
		return
	}

	project, err := store.GetProject(h.db, id)
	if err != nil {
		respondError(c, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, project)
}

// Create creates a new project (admin only).
func (h *ProjectHandler) Create(c *gin.Context) {
	var input models.ProjectCreateUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := models.Project{
		UserID: c.GetString("user_id"),
		Title:  input.Title,
		Body:   input.Body,
		Type:   input.Type,
	}

	if err := h.db.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": project.ID})
}

// Update edits an existing project (admin only, owner enforced).
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseProjectID(c, "id")
	if !ok {
		return
	}

	var input models.ProjectCreateUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := store.FindProject(h.db, id)
	if err != nil {
		respondError(c, err, "Project not found")
		return
	}

	callerID, isAdmin := callerIdentity(c)
	if err := RequireOwner(project.UserID, callerID, isAdmin); err != nil {
		respondError(c, err, "You don't have write permission of this project")
		return
	}

	project.Title = input.Title
	project.Body = input.Body
	project.Type = input.Type

	if err := h.db.Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseProjectID(c, "id")
	if !ok {
		return
	}

	project, err := store.FindProject(h.db, id)
	if err != nil {
		respondError(c, err, "Project not found")
		return
	}

	callerID, isAdmin := callerIdentity(c)
	if err := RequireOwner(project.UserID, callerID, isAdmin); err != nil {
		respondError(c, err, "You don't have write permission of this project")
		return
	}

	if err := h.db.Delete(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdatePriority is the only way a project's priority changes.
func (h *ProjectHandler) UpdatePriority(c *gin.Context) {
	id, ok := parseProjectID(c, "id")
	if !ok {
		return
	}

	var input models.ProjectPriorityUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := store.FindProject(h.db, id)
	if err != nil {
		respondError(c, err, "Project not found")
		return
	}

	if err := h.db.Model(project).UpdateColumn("priority", *input.Priority).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update priority"})
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateResponse lets any authenticated user respond to a project.
func (h *ProjectHandler) CreateResponse(c *gin.Context) {
	projectID, ok := parseProjectID(c, "id")
	if !ok {
		return
	}

	var input models.ProjectResponseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := store.FindProject(h.db, projectID); err != nil {
		respondError(c, err, "Project not found")
		return
	}

	response := models.ProjectResponse{
		UserID:        c.GetString("user_id"),
		ProjectID:     projectID,
		Body:          input.Body,
		PaymentNumber: input.PaymentNumber,
	}

	if err := h.db.Create(&response).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": response.ID})
}

// ListResponses pages a project's responses, optionally filtered by
// verification state via ?verified=true|false.
func (h *ProjectHandler) ListResponses(c *gin.Context) {
	projectID, ok := parseProjectID(c, "id")
	if !ok {
		return
	}
	page, size, ok := parsePaging(c)
	if !ok {
		return
	}

	var verified *bool
	if v := c.Query("verified"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "verified must be true or false"})
			return
		}
		verified = &parsed
	}

	result, err := store.ListProjectResponses(h.db, projectID, verified, page, size)
	if err != nil {
		respondError(c, err, "Failed to fetch responses")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProjectHandler) GetResponse(c *gin.Context) {
	id, ok := parseProjectID(c, "responseId")
	if !ok {
		return
	}

	response, err := store.FindProjectResponse(h.db, id)
	if err != nil {
		respondError(c, err, "Project response not found")
		return
	}

	c.JSON(http.StatusOK, response)
}

// VerifyResponse marks a response verified or unverified. Only the project
// owner may verify; a verified response triggers an SMS to the responder's
// payment number.
func (h *ProjectHandler) VerifyResponse(c *gin.Context) {
	id, ok := parseProjectID(c, "responseId")
	if !ok {
		return
	}

	var input struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := store.FindProjectResponse(h.db, id)
	if err != nil {
		respondError(c, err, "Project response not found")
		return
	}

	if response.Verified == *input.Verified {
		c.Status(http.StatusNoContent)
		return
	}

	project, err := store.FindProject(h.db, response.ProjectID)
	if err != nil {
		respondError(c, err, "Project not found")
		return
	}

	callerID, isAdmin := callerIdentity(c)
	if err := RequireOwner(project.UserID, callerID, isAdmin); err != nil {
		respondError(c, err, "You do not have permission to access this project")
		return
	}

	if err := h.db.Model(response).UpdateColumn("verified", *input.Verified).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update response"})
		return
	}

	if *input.Verified {
		h.notifier.ResponseVerified(response.PaymentNumber, project.Title)
	}

	c.Status(http.StatusNoContent)
}
