// Package store executes composed specifications against Postgres and owns
// the operations that need transactional discipline: the vote toggle and the
// leaderboard ranking queries.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/query"
)

// voteByUserSubquery resolves the viewer's vote id per returned row inside
// the main SELECT. One query for the page regardless of its size; a per-row
// lookup here would turn every listing into O(size) round trips.
const voteByUserSubquery = `(SELECT cv.id FROM content_votes cv
	WHERE cv.content_id = contents.id AND cv.user_id = ?) AS vote_by_user`

const contentShortColumns = `contents.id AS id,
	contents.topic_id AS topic_id,
	contents.title AS title,
	users.id AS author_id,
	users.full_name AS author_name,
	users.profile_picture AS author_profile_picture,
	contents.cover_photo AS cover_photo,
	contents.summary AS summary,
	contents.upvote_count AS upvote_count,
	contents.created_at AS created_at`

// ListContents runs spec against the contents table and returns one page.
// viewerID may be empty for anonymous viewers; their vote_by_user is always
// null. The total count uses the same filter set as the page but ignores
// ordering and pagination.
func ListContents(db *gorm.DB, spec *query.Spec, viewerID string, page, size int) (*query.Page[models.ContentShortResponse], error) {
	filtered := func() *gorm.DB {
		q := db.Model(&models.Content{}).
			Joins("JOIN users ON users.id = contents.user_id")
		for _, cond := range spec.Conds {
			q = q.Where(cond.Expr, cond.Args...)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count contents: %w", err)
	}

	var items []models.ContentShortResponse
	err := filtered().
		Select(contentShortColumns+", "+voteByUserSubquery, viewerID).
		Order(spec.Order).
		Order("contents.id ASC"). // stable pagination when sort values collide
		Scopes(query.Paginate(page, size)).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	return query.NewPage(items, total, page, size), nil
}

// GetContent returns the full content row with author info and the viewer's
// vote id, in a single query.
func GetContent(db *gorm.DB, id uuid.UUID, viewerID string) (*models.ContentFullResponse, error) {
	var out models.ContentFullResponse
	res := db.Model(&models.Content{}).
		Joins("JOIN users ON users.id = contents.user_id").
		Select(contentShortColumns+", contents.body AS body, "+voteByUserSubquery, viewerID).
		Where("contents.id = ?", id).
		Scan(&out)
	if res.Error != nil {
		return nil, fmt.Errorf("get content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("content %s: %w", id, apperr.ErrNotFound)
	}
	return &out, nil
}

// FindContent fetches the raw entity, mapping the missing-row case to the
// shared NotFound kind.
func FindContent(db *gorm.DB, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	if err := db.First(&content, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("content %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &content, nil
}
