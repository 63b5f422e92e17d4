// Package query builds listing specifications: an open set of optional
// filter conditions combined with AND, plus exactly one ordering clause.
// Ordering never affects which rows match, only their sequence; there is no
// OR mode and no negation.
package query

import (
	"fmt"
	"time"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
)

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Sort categories are closed per entity.
type ContentSort string

const (
	ContentSortCreatedAt ContentSort = "CREATED_AT"
	ContentSortVotes     ContentSort = "VOTES"
)

type ProjectSort string

const (
	ProjectSortCreatedAt ProjectSort = "CREATED_AT"
	ProjectSortPriority  ProjectSort = "PRIORITY"
)

// Spec is the composed result: filters plus one order clause. It is an
// ephemeral value, built per request and never persisted.
type Spec struct {
	Conds []Condition
	Order string
}

// ContentCriteria holds the optional filters for a content listing. Nil or
// empty fields mean "no constraint". A date range needs both bounds; a
// one-sided range is rejected even though the boundary layer validates it
// first.
type ContentCriteria struct {
	StartDate  *time.Time
	EndDate    *time.Time
	AuthorID   string
	Title      string
	AuthorName string
	TopicID    string
	SortBy     ContentSort
	Direction  Direction
}

func (c ContentCriteria) Compose() (*Spec, error) {
	if (c.StartDate == nil) != (c.EndDate == nil) {
		return nil, fmt.Errorf("date range requires both bounds: %w", apperr.ErrInvalidArgument)
	}

	spec := &Spec{}
	if c.StartDate != nil {
		spec.Conds = append(spec.Conds, CreatedBetween("contents", *c.StartDate, *c.EndDate))
	}
	if c.Title != "" {
		spec.Conds = append(spec.Conds, TitleContains("contents", c.Title))
	}
	if c.AuthorID != "" {
		spec.Conds = append(spec.Conds, AuthorIs("contents", c.AuthorID))
	}
	if c.AuthorName != "" {
		spec.Conds = append(spec.Conds, AuthorNameContains(c.AuthorName))
	}
	if c.TopicID != "" {
		spec.Conds = append(spec.Conds, TopicIs("contents", c.TopicID))
	}

	sortBy := c.SortBy
	if sortBy == "" {
		sortBy = ContentSortVotes
	}
	dir, err := direction(c.Direction)
	if err != nil {
		return nil, err
	}
	switch sortBy {
	case ContentSortCreatedAt:
		spec.Order = "contents.created_at " + dir
	case ContentSortVotes:
		spec.Order = "contents.upvote_count " + dir
	default:
		return nil, fmt.Errorf("unknown content sort %q: %w", sortBy, apperr.ErrInvalidArgument)
	}
	return spec, nil
}

// ProjectCriteria mirrors ContentCriteria for project listings.
type ProjectCriteria struct {
	StartDate  *time.Time
	EndDate    *time.Time
	AuthorID   string
	Type       string
	Title      string
	AuthorName string
	SortBy     ProjectSort
	Direction  Direction
}

func (c ProjectCriteria) Compose() (*Spec, error) {
	if (c.StartDate == nil) != (c.EndDate == nil) {
		return nil, fmt.Errorf("date range requires both bounds: %w", apperr.ErrInvalidArgument)
	}

	spec := &Spec{}
	if c.StartDate != nil {
		spec.Conds = append(spec.Conds, CreatedBetween("projects", *c.StartDate, *c.EndDate))
	}
	if c.Title != "" {
		spec.Conds = append(spec.Conds, TitleContains("projects", c.Title))
	}
	if c.AuthorID != "" {
		spec.Conds = append(spec.Conds, AuthorIs("projects", c.AuthorID))
	}
	if c.Type != "" {
		spec.Conds = append(spec.Conds, TypeIs("projects", c.Type))
	}
	if c.AuthorName != "" {
		spec.Conds = append(spec.Conds, AuthorNameContains(c.AuthorName))
	}

	sortBy := c.SortBy
	if sortBy == "" {
		sortBy = ProjectSortPriority
	}
	dir, err := direction(c.Direction)
	if err != nil {
		return nil, err
	}
	switch sortBy {
	case ProjectSortCreatedAt:
		spec.Order = "projects.created_at " + dir
	case ProjectSortPriority:
		spec.Order = "projects.priority " + dir
	default:
		return nil, fmt.Errorf("unknown project sort %q: %w", sortBy, apperr.ErrInvalidArgument)
	}
	return spec, nil
}

func direction(d Direction) (string, error) {
	switch d {
	case "":
		return string(Descending), nil
	case Ascending, Descending:
		return string(d), nil
	default:
		return "", fmt.Errorf("unknown sort direction %q: %w", d, apperr.ErrInvalidArgument)
	}
}
