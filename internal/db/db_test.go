package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_exercise_plans_user_target_date_active"}
	otherErr := &pgconn.PgError{Code: "23503", ConstraintName: "fk_something"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"matching constraint", uniqueErr, "uq_exercise_plans_user_target_date_active", true},
		{"any unique violation when constraint empty", uniqueErr, "", true},
		{"wrong constraint name", uniqueErr, "uq_other", false},
		{"not a unique violation", otherErr, "", false},
		{"wrapped unique violation", fmt.Errorf("insert failed: %w", uniqueErr), "", true},
		{"nil error", nil, "", false},
		{"non-pg error", errors.New("boom"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(pgx.ErrNoRows) {
		t.Error("IsNoRows(pgx.ErrNoRows) should be true")
	}
	if !IsNoRows(fmt.Errorf("lookup: %w", pgx.ErrNoRows)) {
		t.Error("IsNoRows should see through wrapping")
	}
	if IsNoRows(errors.New("some other error")) {
		t.Error("IsNoRows(unrelated error) should be false")
	}
	if IsNoRows(nil) {
		t.Error("IsNoRows(nil) should be false")
	}
}

func TestPGUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	pgID := ToPGUUID(id)
	if !pgID.Valid {
		t.Fatal("ToPGUUID of a non-nil uuid should be Valid")
	}
	if got := FromPGUUID(pgID); got != id {
		t.Errorf("FromPGUUID(ToPGUUID(id)) = %s, want %s", got, id)
	}
}

func TestPGUUIDNilIsInvalid(t *testing.T) {
	pgID := ToPGUUID(uuid.Nil)
	if pgID.Valid {
		t.Error("ToPGUUID(uuid.Nil) should not be Valid")
	}
	if got := FromPGUUID(pgID); got != uuid.Nil {
		t.Errorf("FromPGUUID(invalid) = %s, want nil uuid", got)
	}
}

func TestPGUUIDPtrRoundTrip(t *testing.T) {
	if got := ToPGUUIDPtr(nil); got.Valid {
		t.Error("ToPGUUIDPtr(nil) should not be Valid")
	}
	if got := FromPGUUIDPtr(ToPGUUIDPtr(nil)); got != nil {
		t.Errorf("FromPGUUIDPtr(ToPGUUIDPtr(nil)) = %v, want nil", got)
	}

	id := uuid.New()
	pgID := ToPGUUIDPtr(&id)
	if !pgID.Valid {
		t.Fatal("ToPGUUIDPtr(&id) should be Valid")
	}
	got := FromPGUUIDPtr(pgID)
	if got == nil || *got != id {
		t.Errorf("FromPGUUIDPtr round trip = %v, want %s", got, id)
	}
}
