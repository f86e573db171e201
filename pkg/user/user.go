// Package user holds the User aggregate: resolution by external id, and
// the timezone lookup the reading-reminder and summary services depend on.
package user

import (
	"time"

	"github.com/google/uuid"
)

// Status enumerates a User's lifecycle state (§3).
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// DefaultTimezone is used when a user's stored timezone is empty or fails
// to resolve via time.LoadLocation (§4.6, §9).
const DefaultTimezone = "Asia/Seoul"

// User is the aggregate root referenced by plans, reminders, and logs.
type User struct {
	ID         uuid.UUID
	ExternalID string
	DisplayName string
	Timezone   string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ResolveRequest is the JSON body for POST /auth/resolve.
type ResolveRequest struct {
	ExternalID string  `json:"external_id" validate:"required"`
	Name       *string `json:"name"`
}

// Response is the JSON shape returned for a User.
type Response struct {
	UserID      uuid.UUID `json:"user_id"`
	ExternalID  string    `json:"external_id"`
	DisplayName string    `json:"display_name"`
	Timezone    string    `json:"timezone"`
	Status      Status    `json:"status"`
}

// ToResponse converts u to its wire representation.
func (u *User) ToResponse() Response {
	return Response{
		UserID:      u.ID,
		ExternalID:  u.ExternalID,
		DisplayName: u.DisplayName,
		Timezone:    u.Timezone,
		Status:      u.Status,
	}
}

// Location resolves u's IANA timezone, falling back to DefaultTimezone
// when the stored value is empty or unresolvable.
func (u *User) Location() *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
