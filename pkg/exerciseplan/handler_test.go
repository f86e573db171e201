package exerciseplan

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing user_id",
			body:       `{"target_date":"2026-03-01","source":"rule"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing target_date",
			body:       `{"user_id":"` + uuid.New().String() + `","source":"rule"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed target_date",
			body:       `{"user_id":"` + uuid.New().String() + `","target_date":"not-a-date","source":"rule"}`,
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
			r := httptest.NewRequest(http.MethodPost, "/plans/generate", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestSubmitResult_InvalidURLParams(t *testing.T) {
	h := NewHandler(nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	validBody := `{"result":"DONE"}`
	sessionID := uuid.New().String()
	planID := uuid.New().String()

	tests := []struct {
		name string
		path string
	}{
		{"invalid plan id", "/plans/not-a-uuid/sessions/" + sessionID + "/sets/1/result"},
		{"invalid session id", "/plans/" + planID + "/sessions/not-a-uuid/sets/1/result"},
		{"invalid set_no", "/plans/" + planID + "/sessions/" + sessionID + "/sets/not-a-number/result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(validBody))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body = %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestSubmitResult_MissingResult(t *testing.T) {
	h := NewHandler(nil)
	router := chi.NewRouter()
	h.RegisterRoutes(router)

	path := "/plans/" + uuid.New().String() + "/sessions/" + uuid.New().String() + "/sets/1/result"
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body = %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}
