package models

import (
	"time"

	"gorm.io/gorm"
)

// Delegation is a user's seat in an event. At most one exists per
// (event, user); the composite unique index is the source of truth.
type Delegation struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	EventID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_delegations_event_user,priority:1;index" json:"event_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_delegations_event_user,priority:2;index" json:"user_id"`
	Country   string    `gorm:"type:varchar(255);not null" json:"country"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (d *Delegation) BeforeCreate(tx *gorm.DB) error {
	assignID(&d.ID)
	return nil
}
