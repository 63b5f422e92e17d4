package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/query"
)

// RankOf returns the user's 1-based dense rank among all users ordered by
// score descending: 1 + the number of distinct scores strictly greater than
// theirs. Tied users share a rank and no rank is skipped.
func RankOf(db *gorm.DB, userID string) (int64, error) {
	var user models.User
	if err := db.Select("score").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
		}
		return 0, err
	}

	var greater int64
	err := db.Model(&models.User{}).
		Distinct("score").
		Where("score > ?", user.Score).
		Count(&greater).Error
	if err != nil {
		return 0, fmt.Errorf("rank of %s: %w", userID, err)
	}
	return greater + 1, nil
}

// Leaderboard returns one page of users ordered by score descending with the
// user id as tie-break, each annotated with its dense rank computed over the
// entire population by the window function, not just the returned page.
func Leaderboard(db *gorm.DB, page, size int) (*query.Page[models.LeaderboardEntry], error) {
	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var rows []models.LeaderboardEntry
	err := db.Raw(`SELECT id, full_name, profile_picture, score,
			DENSE_RANK() OVER (ORDER BY score DESC) AS rank
		FROM users
		ORDER BY score DESC, id ASC
		LIMIT ? OFFSET ?`, size, page*size).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	return query.NewPage(rows, total, page, size), nil
}
