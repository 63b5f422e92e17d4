package handlers

import (
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/notify"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Content *ContentHandler
	Topic   *TopicHandler
	Project *ProjectHandler
	User    *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, notifier *notify.Notifier) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(db),
		Content: NewContentHandler(db),
		Topic:   NewTopicHandler(db),
		Project: NewProjectHandler(db, notifier),
		User:    NewUserHandler(db),
	}
}
