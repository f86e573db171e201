package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
)

// Store provides database operations for users, hand-written against the
// shared db.DBTX contract (there is no generated query layer in this
// module; every repository scans its own rows, as the teacher does).
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx (the ambient transaction or a
// bare pool in tests).
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const userColumns = `id, external_id, display_name, timezone, status, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.ExternalID, &u.DisplayName, &u.Timezone, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByExternalID returns the user with the given external id, or
// db.IsNoRows(err) if none exists.
func (s *Store) GetByExternalID(ctx context.Context, externalID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	return scanUser(s.dbtx.QueryRow(ctx, query, externalID))
}

// GetByID returns the user with the given id.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.dbtx.QueryRow(ctx, query, id))
}

// Create inserts a new ACTIVE user with the given timezone, using
// DefaultTimezone when timezone is empty.
func (s *Store) Create(ctx context.Context, externalID, displayName, timezone string) (User, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	query := `INSERT INTO users (id, external_id, display_name, timezone, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING ` + userColumns
	row := s.dbtx.QueryRow(ctx, query, externalID, displayName, timezone, StatusActive)
	u, err := scanUser(row)
	if err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}
