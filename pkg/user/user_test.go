package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestLocation_UsesStoredTimezone(t *testing.T) {
	u := User{Timezone: "America/New_York"}
	loc := u.Location()
	if loc.String() != "America/New_York" {
		t.Errorf("Location() = %q, want %q", loc.String(), "America/New_York")
	}
}

func TestLocation_EmptyFallsBackToDefault(t *testing.T) {
	u := User{Timezone: ""}
	loc := u.Location()
	if loc.String() != DefaultTimezone {
		t.Errorf("Location() = %q, want default %q", loc.String(), DefaultTimezone)
	}
}

func TestLocation_InvalidFallsBackToDefault(t *testing.T) {
	u := User{Timezone: "Not/A_Real_Zone"}
	loc := u.Location()
	if loc.String() != DefaultTimezone {
		t.Errorf("Location() = %q, want default %q", loc.String(), DefaultTimezone)
	}
}

func TestToResponse(t *testing.T) {
	u := User{
		ID:          uuid.New(),
		ExternalID:  "ext-1",
		DisplayName: "Jamie",
		Timezone:    "Asia/Seoul",
		Status:      StatusActive,
	}
	resp := u.ToResponse()
	if resp.UserID != u.ID {
		t.Errorf("UserID = %s, want %s", resp.UserID, u.ID)
	}
	if resp.ExternalID != "ext-1" || resp.DisplayName != "Jamie" {
		t.Errorf("got %+v, want external_id=ext-1 display_name=Jamie", resp)
	}
	if resp.Status != StatusActive {
		t.Errorf("Status = %q, want %q", resp.Status, StatusActive)
	}
}

func TestResolve_MissingExternalID(t *testing.T) {
	h := NewHandler(nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	r := httptest.NewRequest(http.MethodPost, "/auth/resolve", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestResolve_InvalidJSON(t *testing.T) {
	h := NewHandler(nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	r := httptest.NewRequest(http.MethodPost, "/auth/resolve", strings.NewReader(`{bad}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}
