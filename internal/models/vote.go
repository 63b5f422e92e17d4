package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentVote records a single user's upvote on a content item. The unique
// index on (content_id, user_id) is what makes a concurrent double-insert
// fail instead of silently duplicating; votes are only ever created or
// deleted through the toggle operation.
type ContentVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_content_voter" json:"content_id"`
	Content   Content   `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_content_voter" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *ContentVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
