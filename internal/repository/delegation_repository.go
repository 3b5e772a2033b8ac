package repository

import (
	"context"
	"strings"

	"github.com/rayysidd/mun/internal/database"
	"github.com/rayysidd/mun/internal/models"
	"gorm.io/gorm"
)

// GormDelegationRepository is a GORM implementation of DelegationRepository
type GormDelegationRepository struct {
	db *gorm.DB
}

// NewDelegationRepository creates a new DelegationRepository
func NewDelegationRepository(db *gorm.DB) DelegationRepository {
	return &GormDelegationRepository{db: db}
}

// Create creates a new delegation
func (r *GormDelegationRepository) Create(ctx context.Context, delegation *models.Delegation) error {
	return translate(r.db.WithContext(ctx).Create(delegation).Error)
}

// Find finds the delegation of a user in an event
func (r *GormDelegationRepository) Find(ctx context.Context, eventID, userID string) (*models.Delegation, error) {
	var delegation models.Delegation
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&delegation).Error; err != nil {
		return nil, err
	}
	return &delegation, nil
}

// Delete removes the caller's delegation with one conditional delete
func (r *GormDelegationRepository) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.Delegation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser lists a user's delegations with their events, newest first
func (r *GormDelegationRepository) ListByUser(ctx context.Context, userID string) ([]models.Delegation, error) {
	var delegations []models.Delegation
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Scopes(database.NewestFirst("delegations")).
		Find(&delegations).Error; err != nil {
		return nil, err
	}
	return delegations, nil
}

// ListByEvent lists the delegations of an event with their users, in join order
func (r *GormDelegationRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Delegation, error) {
	var delegations []models.Delegation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("delegations.created_at ASC").
		Order("delegations.id ASC").
		Find(&delegations).Error; err != nil {
		return nil, err
	}
	return delegations, nil
}

// CountryTaken matches countries case-insensitively, ignoring surrounding spaces
func (r *GormDelegationRepository) CountryTaken(ctx context.Context, eventID, country string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Delegation{}).
		Where("event_id = ? AND LOWER(TRIM(country)) = ?", eventID, strings.ToLower(strings.TrimSpace(country))).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
