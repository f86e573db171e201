package reading

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestBaseReminder_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing user_id",
			body:       `{"reference_date":"2026-03-01"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing reference_date",
			body:       `{"user_id":"` + uuid.New().String() + `"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed reference_date",
			body:       `{"user_id":"` + uuid.New().String() + `","reference_date":"03/01/2026"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       `{bad}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := NewHandler(nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/reading/reminders/base", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRetryReminder_Validation(t *testing.T) {
	userID := uuid.New().String()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing base_notification_id",
			body:       `{"user_id":"` + userID + `","reference_date":"2026-03-01"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing reference_date",
			body:       `{"user_id":"` + userID + `","base_notification_id":"` + uuid.New().String() + `"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := NewHandler(nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/reading/reminders/retry", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
