package dto

import (
	"time"

	"github.com/rayysidd/mun/internal/models"
)

// EventDTO represents an event in API responses. The passcode hash is never
// part of it.
type EventDTO struct {
	ID        string    `json:"id"`
	EventName string    `json:"eventName"`
	Committee string    `json:"committee"`
	Agenda    string    `json:"agenda"`
	Host      string    `json:"host"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DelegationDTO represents a membership; Event is set on the caller's own
// event listing.
type DelegationDTO struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"createdAt"`
	Event     *EventDTO `json:"event,omitempty"`
}

// DelegateDTO is one roster entry
type DelegateDTO struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Country  string `json:"country"`
}

type CreateEventResponse struct {
	Message    string        `json:"message"`
	Event      EventDTO      `json:"event"`
	Delegation DelegationDTO `json:"delegation"`
}

type JoinEventResponse struct {
	Message    string        `json:"message"`
	Delegation DelegationDTO `json:"delegation"`
}

type EventDetailResponse struct {
	Event     EventDTO      `json:"event"`
	Delegates []DelegateDTO `json:"delegates"`
}

// SourceDTO represents a knowledge source
type SourceDTO struct {
	ID        string              `json:"id"`
	EventID   string              `json:"eventId"`
	UserID    string              `json:"userId"`
	Type      models.SourceType   `json:"type"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Status    models.SourceStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:        event.ID,
		EventName: event.EventName,
		Committee: event.Committee,
		Agenda:    event.Agenda,
		Host:      event.HostID,
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}
}

func ToDelegationDTO(d models.Delegation) DelegationDTO {
	return DelegationDTO{
		ID:        d.ID,
		EventID:   d.EventID,
		UserID:    d.UserID,
		Country:   d.Country,
		CreatedAt: d.CreatedAt,
	}
}

// ToDelegationWithEventDTOs converts the caller's delegations, embedding each
// loaded event.
func ToDelegationWithEventDTOs(delegations []models.Delegation) []DelegationDTO {
	out := make([]DelegationDTO, len(delegations))
	for i, d := range delegations {
		event := ToEventDTO(d.Event)
		out[i] = ToDelegationDTO(d)
		out[i].Event = &event
	}
	return out
}

func ToDelegateDTOs(delegations []models.Delegation) []DelegateDTO {
	out := make([]DelegateDTO, len(delegations))
	for i, d := range delegations {
		out[i] = DelegateDTO{
			ID:       d.ID,
			UserID:   d.UserID,
			Username: d.User.Username,
			Country:  d.Country,
		}
	}
	return out
}

func ToSourceDTO(s models.Source) SourceDTO {
	return SourceDTO{
		ID:        s.ID,
		EventID:   s.EventID,
		UserID:    s.UserID,
		Type:      s.Type,
		Title:     s.Title,
		Content:   s.Content,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

func ToSourceDTOs(sources []models.Source) []SourceDTO {
	out := make([]SourceDTO, len(sources))
	for i, s := range sources {
		out[i] = ToSourceDTO(s)
	}
	return out
}
