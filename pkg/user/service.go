package user

import (
	"context"
	"strings"

	"github.com/ANGHOOO/godlife/internal/apperr"
	"github.com/ANGHOOO/godlife/internal/db"
)

// Service resolves callers to a User record, creating one on first sight.
// Authentication itself (verifying external_id ownership) is out of scope
// (§1) — this is the "auth resolve" contract the core consumes.
type Service struct {
	store *Store
}

// NewService builds a Service backed by the ambient transaction's dbtx.
func NewService(dbtx db.DBTX) *Service {
	return &Service{store: NewStore(dbtx)}
}

// Resolve looks up a user by external id, creating it with a default
// display name and timezone if this is the first time it is seen.
func (s *Service) Resolve(ctx context.Context, externalID string, name *string) (User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return User{}, apperr.New(apperr.CodeValidation, "external_id is required")
	}

	u, err := s.store.GetByExternalID(ctx, externalID)
	if err == nil {
		return u, nil
	}
	if !db.IsNoRows(err) {
		return User{}, err
	}

	displayName := externalID
	if name != nil && strings.TrimSpace(*name) != "" {
		displayName = strings.TrimSpace(*name)
	}
	return s.store.Create(ctx, externalID, displayName, DefaultTimezone)
}
