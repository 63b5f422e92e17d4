package models

import "time"

// ContentTopic groups contents. The id is caller-chosen (a short slug),
// so creation must fail on reuse instead of silently overwriting.
type ContentTopic struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type TopicCreateRequest struct {
	ID          string `json:"id" binding:"required"`
	Description string `json:"description" binding:"required,max=255"`
}
