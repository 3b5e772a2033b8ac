package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/utils"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when an insert loses against a unique index.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// CreateWithHostDelegation creates an event and its host's delegation
	// within a single transaction.
	CreateWithHostDelegation(ctx context.Context, event *models.Event, delegation *models.Delegation) error

	// FindByID finds an event by ID
	FindByID(ctx context.Context, id string) (*models.Event, error)

	// FindByName finds an event by its exact name
	FindByName(ctx context.Context, name string) (*models.Event, error)
}

// DelegationRepository defines the interface for membership data access
type DelegationRepository interface {
	// Create creates a new delegation
	Create(ctx context.Context, delegation *models.Delegation) error

	// Find finds the delegation of a user in an event
	Find(ctx context.Context, eventID, userID string) (*models.Delegation, error)

	// Delete removes the delegation of a user in an event and reports whether
	// one existed.
	Delete(ctx context.Context, eventID, userID string) (bool, error)

	// ListByUser lists a user's delegations with their events, newest first
	ListByUser(ctx context.Context, userID string) ([]models.Delegation, error)

	// ListByEvent lists the delegations of an event with their users
	ListByEvent(ctx context.Context, eventID string) ([]models.Delegation, error)

	// CountryTaken reports whether country is already represented in the event
	CountryTaken(ctx context.Context, eventID, country string) (bool, error)
}

// SourceRepository defines the interface for knowledge source data access
type SourceRepository interface {
	// Create creates a new source
	Create(ctx context.Context, source *models.Source) error

	// ListByEvent lists an event's sources, newest first. A nil page returns
	// every source.
	ListByEvent(ctx context.Context, eventID string, page *utils.PaginationParams) ([]models.Source, error)
}

// SpeechRepository defines the interface for speech data access
type SpeechRepository interface {
	// Create creates a new speech
	Create(ctx context.Context, speech *models.Speech) error

	// CreateWithSource creates a speech and the source mirroring it within a
	// single transaction. The source's event is taken from the speech.
	CreateWithSource(ctx context.Context, speech *models.Speech, source *models.Source) error

	// FindByID finds a speech by ID
	FindByID(ctx context.Context, id string) (*models.Speech, error)

	// List retrieves speeches with filtering and pagination
	List(ctx context.Context, filter SpeechFilter) ([]models.Speech, error)

	// Delete deletes a speech
	Delete(ctx context.Context, id string) error
}

// SpeechFilter holds filtering options for listing speeches
type SpeechFilter struct {
	UserID  string
	EventID *string
	Page    *utils.PaginationParams
}

// translate maps storage errors onto repository sentinels. gorm translates
// mysql and postgres; raw SQLite driver errors are matched on their message.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
