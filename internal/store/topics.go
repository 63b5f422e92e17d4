package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
	"github.com/sadi-dev/skillhub/backend/internal/models"
)

// Postgres unique_violation.
const uniqueViolation = "23505"

// CreateTopic inserts a topic. Topic ids are caller-chosen, so a primary-key
// violation means the id is taken; mapping it here keeps the conflict answer
// correct even when two creates of the same id race.
func CreateTopic(db *gorm.DB, topic *models.ContentTopic) error {
	err := db.Create(topic).Error
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("topic %s: %w", topic.ID, apperr.ErrConflict)
	}
	return err
}
