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

const projectShortColumns = `projects.id AS id,
	projects.title AS title,
	users.id AS author_id,
	users.full_name AS author_name,
	users.profile_picture AS author_profile_picture,
	projects.type AS type,
	projects.priority AS priority,
	projects.created_at AS created_at`

// ListProjects runs spec against the projects table and returns one page.
func ListProjects(db *gorm.DB, spec *query.Spec, page, size int) (*query.Page[models.ProjectShortResponse], error) {
	filtered := func() *gorm.DB {
		q := db.Model(&models.Project{}).
			Joins("JOIN users ON users.id = projects.user_id")
		for _, cond := range spec.Conds {
			q = q.Where(cond.Expr, cond.Args...)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	var items []models.ProjectShortResponse
	err := filtered().
		Select(projectShortColumns).
		Order(spec.Order).
		Order("projects.id ASC").
		Scopes(query.Paginate(page, size)).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return query.NewPage(items, total, page, size), nil
}

func GetProject(db *gorm.DB, id uuid.UUID) (*models.ProjectFullResponse, error) {
	var out models.ProjectFullResponse
	res := db.Model(&models.Project{}).
		Joins("JOIN users ON users.id = projects.user_id").
		Select(projectShortColumns + ", projects.body AS body").
		Where("projects.id = ?", id).
		Scan(&out)
	if res.Error != nil {
		return nil, fmt.Errorf("get project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("project %s: %w", id, apperr.ErrNotFound)
	}
	return &out, nil
}

func FindProject(db *gorm.DB, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &project, nil
}

// ListProjectResponses pages the responses of one project ordered newest
// first, optionally filtered by verification state.
func ListProjectResponses(db *gorm.DB, projectID uuid.UUID, verified *bool, page, size int) (*query.Page[models.ProjectResponseShort], error) {
	filtered := func() *gorm.DB {
		q := db.Model(&models.ProjectResponse{}).
			Joins("JOIN users ON users.id = project_responses.user_id").
			Where("project_responses.project_id = ?", projectID)
		if verified != nil {
			q = q.Where("project_responses.verified = ?", *verified)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count project responses: %w", err)
	}

	var items []models.ProjectResponseShort
	err := filtered().
		Select(`project_responses.id AS id,
			users.id AS author_id,
			users.full_name AS author_name,
			users.profile_picture AS author_profile_picture,
			project_responses.payment_number AS payment_number,
			project_responses.verified AS verified,
			project_responses.body AS body,
			project_responses.created_at AS created_at`).
		Order("project_responses.created_at DESC").
		Order("project_responses.id ASC").
		Scopes(query.Paginate(page, size)).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list project responses: %w", err)
	}

	return query.NewPage(items, total, page, size), nil
}

func FindProjectResponse(db *gorm.DB, id uuid.UUID) (*models.ProjectResponse, error) {
	var response models.ProjectResponse
	if err := db.First(&response, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project response %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &response, nil
}
