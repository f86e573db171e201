package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidSource, http.StatusBadRequest},
		{CodePlanNotFound, http.StatusNotFound},
		{CodeReadingPlanNotFound, http.StatusNotFound},
		{CodeNotificationNotFound, http.StatusNotFound},
		{CodePlanConflict, http.StatusConflict},
		{CodeContextMismatch, http.StatusConflict},
		{CodeSetOrderViolation, http.StatusUnprocessableEntity},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{Code("unknown_code"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			e := New(tt.code, "boom")
			if got := e.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(CodePlanConflict, "already active")
	if !Is(err, CodePlanConflict) {
		t.Error("Is() should match the same code")
	}
	if Is(err, CodeValidation) {
		t.Error("Is() should not match a different code")
	}
	if Is(errors.New("plain error"), CodePlanConflict) {
		t.Error("Is() should not match an untagged error")
	}
}

func TestWrapPreservesUnwrap(t *testing.T) {
	root := errors.New("unique violation")
	err := Wrap(CodePlanConflict, "conflict", root)

	if !errors.Is(err, root) {
		t.Error("errors.Is should see through Wrap to the underlying error")
	}
	if got := CodeFor(err); got != CodePlanConflict {
		t.Errorf("CodeFor() = %q, want %q", got, CodePlanConflict)
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(CodeSetOrderViolation, "set %d must precede set %d", 1, 2)
	want := "set 1 must precede set 2"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestStatusForUntaggedError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", errors.New("plain"))
	if got := StatusFor(err); got != http.StatusInternalServerError {
		t.Errorf("StatusFor(untagged) = %d, want %d", got, http.StatusInternalServerError)
	}
	if got := CodeFor(err); got != "" {
		t.Errorf("CodeFor(untagged) = %q, want empty", got)
	}
}

func TestErrorStringIncludesUnderlyingError(t *testing.T) {
	root := errors.New("sqlstate 23505")
	err := Wrap(CodePlanConflict, "conflict", root)
	msg := err.Error()
	if !errors.Is(err, root) {
		t.Fatal("sanity: Wrap should preserve root")
	}
	if msg == "" {
		t.Error("Error() should not be empty")
	}
	if !strings.Contains(msg, root.Error()) {
		t.Errorf("Error() = %q, want it to include %q", msg, root.Error())
	}
}
