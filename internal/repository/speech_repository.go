package repository

import (
	"context"

	"github.com/rayysidd/mun/internal/database"
	"github.com/rayysidd/mun/internal/models"
	"gorm.io/gorm"
)

// GormSpeechRepository is a GORM implementation of SpeechRepository
type GormSpeechRepository struct {
	db *gorm.DB
}

// NewSpeechRepository creates a new SpeechRepository
func NewSpeechRepository(db *gorm.DB) SpeechRepository {
	return &GormSpeechRepository{db: db}
}

// Create creates a new speech
func (r *GormSpeechRepository) Create(ctx context.Context, speech *models.Speech) error {
	return translate(r.db.WithContext(ctx).Create(speech).Error)
}

// CreateWithSource creates the speech and its mirrored source atomically
func (r *GormSpeechRepository) CreateWithSource(ctx context.Context, speech *models.Speech, source *models.Source) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(speech).Error; err != nil {
			return err
		}

		if speech.EventID != nil {
			source.EventID = *speech.EventID
		}
		source.UserID = speech.UserID

		return tx.Create(source).Error
	})
	return translate(err)
}

// FindByID finds a speech by ID
func (r *GormSpeechRepository) FindByID(ctx context.Context, id string) (*models.Speech, error) {
	var speech models.Speech
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&speech).Error; err != nil {
		return nil, err
	}
	return &speech, nil
}

// List retrieves a user's speeches, newest first
func (r *GormSpeechRepository) List(ctx context.Context, filter SpeechFilter) ([]models.Speech, error) {
	speeches := []models.Speech{}

	query := r.db.WithContext(ctx).Model(&models.Speech{}).Where("speeches.user_id = ?", filter.UserID)
	if filter.EventID != nil {
		query = query.Where("speeches.event_id = ?", *filter.EventID)
	}

	if err := query.
		Scopes(database.NewestFirst("speeches"), database.Paginate(filter.Page)).
		Find(&speeches).Error; err != nil {
		return nil, err
	}
	return speeches, nil
}

// Delete deletes a speech
func (r *GormSpeechRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Speech{}).Error
}
