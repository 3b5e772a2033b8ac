package services

import (
	"context"

	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/repository"
)

// membershipGate answers the one question every event-scoped operation asks:
// does the caller hold a delegation for this event.
type membershipGate struct {
	delegations repository.DelegationRepository
}

func (g membershipGate) ensureDelegation(ctx context.Context, eventID, userID string) (*models.Delegation, error) {
	delegation, err := g.delegations.Find(ctx, eventID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotParticipant
		}
		return nil, apierrors.Internal("failed to verify event membership", err)
	}
	return delegation, nil
}
