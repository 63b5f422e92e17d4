package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectTypeFree = "FREE"
	ProjectTypePaid = "PAID"
)

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"not null;type:text" json:"body"`
	Type      string    `gorm:"not null;size:20" json:"type"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProjectCreateUpdateRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	Body  string `json:"body" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=FREE PAID"`
}

type ProjectPriorityUpdateRequest struct {
	Priority *int `json:"priority" binding:"required"`
}

type ProjectShortResponse struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	AuthorID             string    `json:"author_id"`
	AuthorName           string    `json:"author_name"`
	AuthorProfilePicture string    `json:"author_profile_picture"`
	Type                 string    `json:"type"`
	Priority             int       `json:"priority"`
	CreatedAt            time.Time `json:"created_at"`
}

type ProjectFullResponse struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	Body                 string    `json:"body"`
	AuthorID             string    `json:"author_id"`
	AuthorName           string    `json:"author_name"`
	AuthorProfilePicture string    `json:"author_profile_picture"`
	Type                 string    `json:"type"`
	Priority             int       `json:"priority"`
	CreatedAt            time.Time `json:"created_at"`
}
