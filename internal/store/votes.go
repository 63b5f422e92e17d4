package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
	"github.com/sadi-dev/skillhub/backend/internal/models"
)

// Toggle-vote results.
const (
	VoteApplied = 1
	VoteRevoked = -1
)

// ToggleVote flips the voter's vote on a content item and keeps the
// denormalized upvote_count in step with the vote rows, all inside one
// transaction. The content row is locked first, which serializes concurrent
// toggles on the same item; the counter is adjusted relative to its current
// value rather than overwritten from a stale read, and the unique
// (content_id, user_id) index backstops double insertion. Returns the signed
// delta that was applied.
func ToggleVote(db *gorm.DB, contentID uuid.UUID, voterID string) (int, error) {
	var delta int
	err := db.Transaction(func(tx *gorm.DB) error {
		var content models.Content
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&content, "id = ?", contentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("content %s: %w", contentID, apperr.ErrNotFound)
			}
			return err
		}

		res := tx.Where("content_id = ? AND user_id = ?", contentID, voterID).
			Delete(&models.ContentVote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			delta = VoteRevoked
		} else {
			vote := models.ContentVote{ContentID: contentID, UserID: voterID}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
			delta = VoteApplied
		}

		return tx.Model(&models.Content{}).
			Where("id = ?", contentID).
			UpdateColumn("upvote_count", gorm.Expr("upvote_count + ?", delta)).Error
	})
	if err != nil {
		return 0, err
	}
	return delta, nil
}
