package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	HostID       string    `gorm:"type:varchar(36);not null;index" json:"host_id"`
	EventName    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"event_name"`
	Committee    string    `gorm:"type:varchar(255);not null" json:"committee"`
	Agenda       string    `gorm:"type:text;not null" json:"agenda"`
	PasscodeHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Host        User         `gorm:"foreignKey:HostID" json:"-"`
	Delegations []Delegation `gorm:"foreignKey:EventID" json:"-"`
	Sources     []Source     `gorm:"foreignKey:EventID" json:"-"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}
