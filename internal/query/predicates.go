package query

import (
	"strings"
	"time"
)

// Condition is one filter clause ready to be handed to gorm's Where. Keeping
// conditions as plain values lets the composer be inspected and tested
// without a database connection.
type Condition struct {
	Expr string
	Args []any
}

// CreatedBetween matches rows whose created_at lies inside the inclusive
// [start, end] range.
func CreatedBetween(table string, start, end time.Time) Condition {
	return Condition{
		Expr: table + ".created_at BETWEEN ? AND ?",
		Args: []any{start, end},
	}
}

func AuthorIs(table, userID string) Condition {
	return Condition{Expr: table + ".user_id = ?", Args: []any{userID}}
}

func TopicIs(table, topicID string) Condition {
	return Condition{Expr: table + ".topic_id = ?", Args: []any{topicID}}
}

func TypeIs(table, projectType string) Condition {
	return Condition{Expr: table + ".type = ?", Args: []any{projectType}}
}

// TitleContains is a case-insensitive substring match on the title column.
func TitleContains(table, title string) Condition {
	return Condition{
		Expr: "lower(" + table + ".title) LIKE ?",
		Args: []any{"%" + strings.ToLower(title) + "%"},
	}
}

// AuthorNameContains is a case-insensitive substring match on the author's
// full name. Listings always join the users table, so the column can be
// qualified unconditionally.
func AuthorNameContains(name string) Condition {
	return Condition{
		Expr: "lower(users.full_name) LIKE ?",
		Args: []any{"%" + strings.ToLower(name) + "%"},
	}
}
