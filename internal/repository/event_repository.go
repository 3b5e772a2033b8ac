package repository

import (
	"context"

	"github.com/rayysidd/mun/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// CreateWithHostDelegation creates the event and the host delegation atomically.
func (r *GormEventRepository) CreateWithHostDelegation(ctx context.Context, event *models.Event, delegation *models.Delegation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		delegation.EventID = event.ID
		delegation.UserID = event.HostID

		return tx.Create(delegation).Error
	})
	return translate(err)
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByName finds an event by name
func (r *GormEventRepository) FindByName(ctx context.Context, name string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("event_name = ?", name).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
