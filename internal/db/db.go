// Package db provides the shared database contract used by every
// repository: a DBTX abstraction satisfied by both a pooled connection and
// an in-flight transaction, plus the pgtype/uuid conversions the
// repositories need to move between wire types and domain types.
package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx, and *pgxpool.Conn. Every
// repository in this module is constructed from a DBTX rather than a
// concrete pool type, so the same repository code runs against the ambient
// request transaction (see internal/txn) or a bare pool in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// IsUniqueViolation reports whether err is a Postgres unique-violation
// (sqlstate 23505), optionally scoped to a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	if constraint == "" {
		return true
	}
	return pgErr.ConstraintName == constraint
}

// IsNoRows reports whether err is pgx's "no rows in result set" sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// ToPGUUID converts a uuid.UUID to its pgtype wire representation.
func ToPGUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: id != uuid.Nil}
}

// ToPGUUIDPtr converts an optional uuid.UUID pointer to its pgtype wire
// representation, returning an invalid UUID for nil.
func ToPGUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return ToPGUUID(*id)
}

// FromPGUUID converts a valid pgtype.UUID to uuid.UUID, returning the nil
// UUID when the value is not valid.
func FromPGUUID(v pgtype.UUID) uuid.UUID {
	if !v.Valid {
		return uuid.Nil
	}
	return uuid.UUID(v.Bytes)
}

// FromPGUUIDPtr converts a pgtype.UUID to an optional uuid.UUID pointer.
func FromPGUUIDPtr(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}
