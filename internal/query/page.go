package query

import "gorm.io/gorm"

// Page is one slice of a listing plus the total count matching the filters.
// TotalCount is independent of Page and Size; it reflects the same predicate
// set that produced Items.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

func NewPage[T any](items []T, total int64, page, size int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, TotalCount: total, Page: page, Size: size}
}

// Paginate applies offset = page*size, limit = size.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page * size).Limit(size)
	}
}
