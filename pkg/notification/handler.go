package notification

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/txn"
)

// RetryRequest is the JSON body for POST /notifications/retry.
type RetryRequest struct {
	NotificationID uuid.UUID `json:"notification_id" validate:"required"`
}

// Handler exposes the notification retry HTTP surface (§6.2).
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes mounts POST /notifications/retry under r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/notifications/retry", h.retry)
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request) {
	var req RetryRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	n, err := svc.MarkAsRetried(r.Context(), req.NotificationID)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}
	httpserver.Respond(w, http.StatusOK, n)
}
