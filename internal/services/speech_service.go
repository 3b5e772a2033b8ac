package services

import (
	"context"
	"fmt"
	"strings"

	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/repository"
	"github.com/rayysidd/mun/internal/utils"
)

// SpeechService handles saved speeches
type SpeechService struct {
	membershipGate
	speeches repository.SpeechRepository
}

// NewSpeechService creates a new SpeechService
func NewSpeechService(speeches repository.SpeechRepository, delegations repository.DelegationRepository) *SpeechService {
	return &SpeechService{
		membershipGate: membershipGate{delegations: delegations},
		speeches:       speeches,
	}
}

// SaveSpeechInput represents input for saving a speech. EventID is optional.
type SaveSpeechInput struct {
	UserID  string
	EventID string
	Topic   string
	Country string
	Content string
}

// SaveSpeech stores a speech. A speech tied to an event is also mirrored into
// that event's sources in the same transaction.
func (s *SpeechService) SaveSpeech(ctx context.Context, input SaveSpeechInput) (*models.Speech, error) {
	topic := strings.TrimSpace(input.Topic)
	country := strings.TrimSpace(input.Country)
	if topic == "" || country == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrSpeechFieldsRequired
	}

	speech := &models.Speech{
		UserID:  input.UserID,
		Topic:   topic,
		Country: country,
		Content: input.Content,
	}

	eventID := strings.TrimSpace(input.EventID)
	if eventID == "" {
		if err := s.speeches.Create(ctx, speech); err != nil {
			return nil, apierrors.Internal("failed to save speech", err)
		}
		return speech, nil
	}

	if _, err := s.ensureDelegation(ctx, eventID, input.UserID); err != nil {
		return nil, err
	}

	speech.EventID = &eventID
	source := &models.Source{
		Type:    models.SourceTypeText,
		Title:   fmt.Sprintf(`Saved Speech: "%s"`, topic),
		Content: input.Content,
		Status:  models.SourceStatusPending,
	}
	if err := s.speeches.CreateWithSource(ctx, speech, source); err != nil {
		return nil, apierrors.Internal("failed to save speech", err)
	}

	return speech, nil
}

// ListSpeeches lists the caller's speeches, optionally narrowed to one event
// the caller belongs to.
func (s *SpeechService) ListSpeeches(ctx context.Context, userID, eventID string, page *utils.PaginationParams) ([]models.Speech, error) {
	filter := repository.SpeechFilter{UserID: userID, Page: page}

	if eventID = strings.TrimSpace(eventID); eventID != "" {
		if _, err := s.ensureDelegation(ctx, eventID, userID); err != nil {
			return nil, err
		}
		filter.EventID = &eventID
	}

	speeches, err := s.speeches.List(ctx, filter)
	if err != nil {
		return nil, apierrors.Internal("failed to list speeches", err)
	}
	return speeches, nil
}

// GetSpeech returns one of the caller's speeches.
func (s *SpeechService) GetSpeech(ctx context.Context, speechID, userID string) (*models.Speech, error) {
	return s.findOwned(ctx, speechID, userID)
}

// DeleteSpeech deletes a speech owned by the caller.
func (s *SpeechService) DeleteSpeech(ctx context.Context, speechID, userID string) error {
	if _, err := s.findOwned(ctx, speechID, userID); err != nil {
		return err
	}

	if err := s.speeches.Delete(ctx, speechID); err != nil {
		return apierrors.Internal("failed to delete speech", err)
	}
	return nil
}

func (s *SpeechService) findOwned(ctx context.Context, speechID, userID string) (*models.Speech, error) {
	speech, err := s.speeches.FindByID(ctx, speechID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSpeechNotFound
		}
		return nil, apierrors.Internal("failed to find speech", err)
	}

	if speech.UserID != userID {
		return nil, ErrNotSpeechOwner
	}
	return speech, nil
}
