package services

import (
	"context"
	"errors"
	"strings"

	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/repository"
	"github.com/rayysidd/mun/internal/utils"
	"golang.org/x/sync/errgroup"
)

// EventService handles event membership business logic
type EventService struct {
	membershipGate
	events  repository.EventRepository
	sources repository.SourceRepository
	hasher  utils.Hasher

	allowDuplicateCountry bool
}

// EventOptions tunes event policies.
type EventOptions struct {
	// AllowDuplicateCountry lets several delegates of one event represent the
	// same country.
	AllowDuplicateCountry bool
}

// NewEventService creates a new EventService
func NewEventService(
	events repository.EventRepository,
	delegations repository.DelegationRepository,
	sources repository.SourceRepository,
	hasher utils.Hasher,
	opts EventOptions,
) *EventService {
	return &EventService{
		membershipGate:        membershipGate{delegations: delegations},
		events:                events,
		sources:               sources,
		hasher:                hasher,
		allowDuplicateCountry: opts.AllowDuplicateCountry,
	}
}

// CreateEventInput represents input for creating an event
type CreateEventInput struct {
	EventName string
	Committee string
	Agenda    string
	Passcode  string
	Country   string
	HostID    string
}

// JoinEventInput represents input for joining an event by passcode
type JoinEventInput struct {
	EventName string
	Passcode  string
	Country   string
	UserID    string
}

// AddSourceInput represents input for adding a knowledge source to an event
type AddSourceInput struct {
	EventID string
	UserID  string
	Type    models.SourceType
	Title   string
	Content string
}

// EventDetails bundles an event with its delegate roster.
type EventDetails struct {
	Event     *models.Event
	Delegates []models.Delegation
}

// CreateEvent creates an event and enrolls its host as the first delegation.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, *models.Delegation, error) {
	name := strings.TrimSpace(input.EventName)
	committee := strings.TrimSpace(input.Committee)
	agenda := strings.TrimSpace(input.Agenda)
	country := strings.TrimSpace(input.Country)
	if name == "" || committee == "" || agenda == "" || country == "" || strings.TrimSpace(input.Passcode) == "" {
		return nil, nil, ErrEventFieldsRequired
	}

	if _, err := s.events.FindByName(ctx, name); err == nil {
		return nil, nil, ErrEventNameTaken
	} else if !isNotFound(err) {
		return nil, nil, apierrors.Internal("failed to check event name", err)
	}

	passcodeHash, err := s.hasher.Hash(input.Passcode)
	if err != nil {
		return nil, nil, apierrors.Internal("failed to hash passcode", err)
	}

	event := &models.Event{
		HostID:       input.HostID,
		EventName:    name,
		Committee:    committee,
		Agenda:       agenda,
		PasscodeHash: passcodeHash,
	}
	delegation := &models.Delegation{Country: country}

	if err := s.events.CreateWithHostDelegation(ctx, event, delegation); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, nil, apierrors.Wrap(ErrEventNameTaken, err)
		}
		return nil, nil, apierrors.Internal("failed to create event", err)
	}

	return event, delegation, nil
}

// JoinEvent enrolls the user after the existence, passcode and duplicate
// membership gates pass, in that order.
func (s *EventService) JoinEvent(ctx context.Context, input JoinEventInput) (*models.Delegation, error) {
	name := strings.TrimSpace(input.EventName)
	country := strings.TrimSpace(input.Country)
	if name == "" || country == "" || strings.TrimSpace(input.Passcode) == "" {
		return nil, ErrJoinFieldsRequired
	}

	event, err := s.events.FindByName(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNameNotFound
		}
		return nil, apierrors.Internal("failed to find event", err)
	}

	if !s.hasher.Verify(event.PasscodeHash, input.Passcode) {
		return nil, ErrIncorrectPasscode
	}

	if _, err := s.delegations.Find(ctx, event.ID, input.UserID); err == nil {
		return nil, ErrAlreadyJoined
	} else if !isNotFound(err) {
		return nil, apierrors.Internal("failed to check membership", err)
	}

	if !s.allowDuplicateCountry {
		taken, err := s.delegations.CountryTaken(ctx, event.ID, country)
		if err != nil {
			return nil, apierrors.Internal("failed to check country", err)
		}
		if taken {
			return nil, ErrCountryTaken
		}
	}

	delegation := &models.Delegation{
		EventID: event.ID,
		UserID:  input.UserID,
		Country: country,
	}
	if err := s.delegations.Create(ctx, delegation); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apierrors.Wrap(ErrAlreadyJoined, err)
		}
		return nil, apierrors.Internal("failed to join event", err)
	}

	return delegation, nil
}

// LeaveEvent removes the caller's own delegation.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID string) error {
	deleted, err := s.delegations.Delete(ctx, eventID, userID)
	if err != nil {
		return apierrors.Internal("failed to leave event", err)
	}
	if !deleted {
		return ErrNotInEvent
	}
	return nil
}

// GetEvent returns the event with its roster. Membership is checked before
// existence so non-members cannot probe for event ids.
func (s *EventService) GetEvent(ctx context.Context, eventID, userID string) (*EventDetails, error) {
	if _, err := s.ensureDelegation(ctx, eventID, userID); err != nil {
		return nil, err
	}

	var (
		event     *models.Event
		delegates []models.Delegation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		event, err = s.events.FindByID(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		delegates, err = s.delegations.ListByEvent(gctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, apierrors.Internal("failed to load event", err)
	}

	return &EventDetails{Event: event, Delegates: delegates}, nil
}

// GetDelegates lists the roster of an event the caller belongs to.
func (s *EventService) GetDelegates(ctx context.Context, eventID, userID string) ([]models.Delegation, error) {
	if _, err := s.ensureDelegation(ctx, eventID, userID); err != nil {
		return nil, err
	}

	delegates, err := s.delegations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apierrors.Internal("failed to list delegates", err)
	}
	return delegates, nil
}

// AddSource attaches a knowledge source to the event. New sources always
// start out pending.
func (s *EventService) AddSource(ctx context.Context, input AddSourceInput) (*models.Source, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrSourceFieldsRequired
	}

	sourceType := input.Type
	if sourceType == "" {
		sourceType = models.SourceTypeText
	}
	if !sourceType.Valid() {
		return nil, ErrInvalidSourceType
	}

	if _, err := s.ensureDelegation(ctx, input.EventID, input.UserID); err != nil {
		return nil, err
	}

	source := &models.Source{
		EventID: input.EventID,
		UserID:  input.UserID,
		Type:    sourceType,
		Title:   title,
		Content: input.Content,
		Status:  models.SourceStatusPending,
	}
	if err := s.sources.Create(ctx, source); err != nil {
		return nil, apierrors.Internal("failed to add source", err)
	}

	return source, nil
}

// GetSources lists an event's sources, newest first.
func (s *EventService) GetSources(ctx context.Context, eventID, userID string, page *utils.PaginationParams) ([]models.Source, error) {
	if _, err := s.ensureDelegation(ctx, eventID, userID); err != nil {
		return nil, err
	}

	sources, err := s.sources.ListByEvent(ctx, eventID, page)
	if err != nil {
		return nil, apierrors.Internal("failed to list sources", err)
	}
	return sources, nil
}

// ListEventsForUser returns the caller's delegations with their events,
// newest delegation first. Delegations whose event did not load are dropped.
func (s *EventService) ListEventsForUser(ctx context.Context, userID string) ([]models.Delegation, error) {
	delegations, err := s.delegations.ListByUser(ctx, userID)
	if err != nil {
		return nil, apierrors.Internal("failed to list events", err)
	}

	valid := make([]models.Delegation, 0, len(delegations))
	for _, d := range delegations {
		if d.Event.ID == "" {
			continue
		}
		valid = append(valid, d)
	}
	return valid, nil
}
