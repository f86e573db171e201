package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Source string `json:"source" validate:"omitempty,oneof=rule llm"`
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	body := `{"user_id":"u1","source":"rule"}`
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var dst sampleRequest
	if err := DecodeAndValidate(r, &dst); err != nil {
		t.Fatalf("DecodeAndValidate() error = %v", err)
	}
	if dst.UserID != "u1" || dst.Source != "rule" {
		t.Errorf("decoded = %+v, want user_id=u1 source=rule", dst)
	}
}

func TestDecodeAndValidate_MissingRequired(t *testing.T) {
	body := `{"source":"rule"}`
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var dst sampleRequest
	err := DecodeAndValidate(r, &dst)
	if err == nil {
		t.Fatal("expected a validation error for missing user_id")
	}
}

func TestDecodeAndValidate_UnknownField(t *testing.T) {
	body := `{"user_id":"u1","bogus":"field"}`
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var dst sampleRequest
	if err := DecodeAndValidate(r, &dst); err == nil {
		t.Fatal("expected a decode error for an unknown field")
	}
}

func TestRespondValidationError_UsesJSONFieldNames(t *testing.T) {
	body := `{"source":"bogus"}`
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var dst sampleRequest
	err := DecodeAndValidate(r, &dst)
	if err == nil {
		t.Fatal("expected a validation error")
	}

	w := httptest.NewRecorder()
	RespondValidationError(w, err)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	msg := w.Body.String()
	if !strings.Contains(msg, "user_id") {
		t.Errorf("validation message should reference json tag %q, got %q", "user_id", msg)
	}
}

func TestRespondValidationError_NonValidatorError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondValidationError(w, errDecodeFailure{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

type errDecodeFailure struct{}

func (errDecodeFailure) Error() string { return "malformed body" }
