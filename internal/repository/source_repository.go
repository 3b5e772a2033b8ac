package repository

import (
	"context"

	"github.com/rayysidd/mun/internal/database"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/utils"
	"gorm.io/gorm"
)

// GormSourceRepository is a GORM implementation of SourceRepository
type GormSourceRepository struct {
	db *gorm.DB
}

// NewSourceRepository creates a new SourceRepository
func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &GormSourceRepository{db: db}
}

// Create creates a new source
func (r *GormSourceRepository) Create(ctx context.Context, source *models.Source) error {
	return translate(r.db.WithContext(ctx).Create(source).Error)
}

// ListByEvent lists an event's sources, newest first
func (r *GormSourceRepository) ListByEvent(ctx context.Context, eventID string, page *utils.PaginationParams) ([]models.Source, error) {
	sources := []models.Source{}
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Scopes(database.NewestFirst("sources"), database.Paginate(page)).
		Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}
