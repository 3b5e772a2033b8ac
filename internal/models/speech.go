package models

import (
	"time"

	"gorm.io/gorm"
)

type Speech struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	EventID   *string   `gorm:"type:varchar(36);index" json:"event_id"`
	Topic     string    `gorm:"type:varchar(255);not null" json:"topic"`
	Country   string    `gorm:"type:varchar(255);not null" json:"country"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Speech) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
