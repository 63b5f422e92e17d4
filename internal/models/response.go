package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectResponse is a user's submission against a project. PaymentNumber is
// the mobile payment account the project owner pays out to for PAID projects.
type ProjectResponse struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	ProjectID     uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project       Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Body          string    `gorm:"not null;type:text" json:"body"`
	PaymentNumber string    `gorm:"size:20" json:"payment_number"`
	Verified      bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *ProjectResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ProjectResponseRequest struct {
	Body          string `json:"body" binding:"required"`
	PaymentNumber string `json:"payment_number" binding:"max=20"`
}

type ProjectResponseShort struct {
	ID                   uuid.UUID `json:"id"`
	AuthorID             string    `json:"author_id"`
	AuthorName           string    `json:"author_name"`
	AuthorProfilePicture string    `json:"author_profile_picture"`
	PaymentNumber        string    `json:"payment_number"`
	Verified             bool      `json:"verified"`
	Body                 string    `json:"body"`
	CreatedAt            time.Time `json:"created_at"`
}
