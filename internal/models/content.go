package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Content struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string       `gorm:"not null;index" json:"user_id"`
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	TopicID     string       `gorm:"not null;index" json:"topic_id"`
	Topic       ContentTopic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string       `gorm:"not null" json:"title"`
	CoverPhoto  string       `gorm:"not null;size:1000" json:"cover_photo"`
	Summary     string       `gorm:"not null;size:1000" json:"summary"`
	Body        string       `gorm:"not null;type:text" json:"body"`
	UpvoteCount int          `gorm:"not null;default:0" json:"upvote_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ContentCreateUpdateRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	Body       string `json:"body" binding:"required"`
	TopicID    string `json:"topic_id" binding:"required"`
	CoverPhoto string `json:"cover_photo" binding:"required,max=1000"`
	Summary    string `json:"summary" binding:"required,max=1000"`
}

// ContentShortResponse is one listing row. VoteByUser carries the id of the
// requesting viewer's vote on this content, nil when the viewer is anonymous
// or has not voted.
type ContentShortResponse struct {
	ID                   uuid.UUID  `json:"id"`
	TopicID              string     `json:"topic_id"`
	Title                string     `json:"title"`
	VoteByUser           *uuid.UUID `json:"vote_by_user"`
	AuthorID             string     `json:"author_id"`
	AuthorName           string     `json:"author_name"`
	AuthorProfilePicture string     `json:"author_profile_picture"`
	CoverPhoto           string     `json:"cover_photo"`
	Summary              string     `json:"summary"`
	UpvoteCount          int        `json:"upvote_count"`
	CreatedAt            time.Time  `json:"created_at"`
}

type ContentFullResponse struct {
	ID                   uuid.UUID  `json:"id"`
	TopicID              string     `json:"topic_id"`
	Title                string     `json:"title"`
	Body                 string     `json:"body"`
	VoteByUser           *uuid.UUID `json:"vote_by_user"`
	AuthorID             string     `json:"author_id"`
	AuthorName           string     `json:"author_name"`
	AuthorProfilePicture string     `json:"author_profile_picture"`
	CoverPhoto           string     `json:"cover_photo"`
	Summary              string     `json:"summary"`
	UpvoteCount          int        `json:"upvote_count"`
	CreatedAt            time.Time  `json:"created_at"`
}
