package dto

import (
	"time"

	"github.com/rayysidd/mun/internal/models"
)

// SpeechDTO represents a saved speech
type SpeechDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	EventID   *string   `json:"eventId"`
	Topic     string    `json:"topic"`
	Country   string    `json:"country"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToSpeechDTO(s models.Speech) SpeechDTO {
	return SpeechDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		EventID:   s.EventID,
		Topic:     s.Topic,
		Country:   s.Country,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
	}
}

func ToSpeechDTOs(speeches []models.Speech) []SpeechDTO {
	out := make([]SpeechDTO, len(speeches))
	for i, s := range speeches {
		out[i] = ToSpeechDTO(s)
	}
	return out
}
