package database

import (
	"gorm.io/gorm"

	"github.com/rayysidd/mun/internal/utils"
)

// Paginate applies pagination to a GORM query. A nil params leaves the query
// unbounded.
func Paginate(params *utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NewestFirst orders by creation time with the primary key as a tie-breaker,
// so repeated listings return identical sequences.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}
