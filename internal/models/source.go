package models

import (
	"time"

	"gorm.io/gorm"
)

type SourceType string

const (
	SourceTypeURL  SourceType = "url"
	SourceTypeText SourceType = "text"
	SourceTypePDF  SourceType = "pdf"
)

// Valid reports whether t is one of the known source types.
func (t SourceType) Valid() bool {
	switch t {
	case SourceTypeURL, SourceTypeText, SourceTypePDF:
		return true
	}
	return false
}

// SourceStatus is advanced by the external ingestion worker; this service
// only ever writes SourceStatusPending.
type SourceStatus string

const (
	SourceStatusPending    SourceStatus = "pending"
	SourceStatusProcessing SourceStatus = "processing"
	SourceStatusCompleted  SourceStatus = "completed"
	SourceStatusFailed     SourceStatus = "failed"
)

type Source struct {
	ID        string       `gorm:"type:varchar(36);primarykey" json:"id"`
	EventID   string       `gorm:"type:varchar(36);not null;index" json:"event_id"`
	UserID    string       `gorm:"type:varchar(36);not null" json:"user_id"`
	Type      SourceType   `gorm:"type:varchar(20);not null;default:'url'" json:"type"`
	Title     string       `gorm:"type:varchar(255);not null" json:"title"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Status    SourceStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Source) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
