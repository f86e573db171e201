package reading

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/txn"
)

// Handler exposes the reading-reminder HTTP surface (§6.2).
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes mounts the reading-reminder endpoints under r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reading/reminders/base", h.base)
	r.Post("/reading/reminders/retry", h.retry)
}

func (h *Handler) base(w http.ResponseWriter, r *http.Request) {
	var req BaseReminderRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}
	refDate, err := time.Parse(dateLayout, req.ReferenceDate)
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "reference_date must be YYYY-MM-DD"})
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	outcome, err := svc.ScheduleDailyReminder(r.Context(), req.UserID, refDate, req.IdempotencyKey)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}
	httpserver.Respond(w, http.StatusOK, outcome)
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request) {
	var req RetryReminderRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}
	refDate, err := time.Parse(dateLayout, req.ReferenceDate)
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "reference_date must be YYYY-MM-DD"})
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	outcome, err := svc.ScheduleRetryIfIncomplete(r.Context(), req.UserID, refDate, req.BaseNotificationID, req.IdempotencyKey)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}
	httpserver.Respond(w, http.StatusOK, outcome)
}
