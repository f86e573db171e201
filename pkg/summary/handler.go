package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/txn"
)

const dateLayout = "2006-01-02"

// Handler exposes the summary HTTP surface (§6.2).
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes mounts the summary endpoints under r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/summary/daily", h.daily)
	r.Get("/summary/weekly", h.weekly)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "invalid user_id"})
		return
	}
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "date must be YYYY-MM-DD"})
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	d, err := svc.RecomputeDaily(r.Context(), userID, date)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}
	httpserver.Respond(w, http.StatusOK, d.ToResponse())
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "invalid user_id"})
		return
	}
	startDate, err := time.Parse(dateLayout, r.URL.Query().Get("start_date"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "start_date must be YYYY-MM-DD"})
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	wk, err := svc.RecomputeWeekly(r.Context(), userID, startDate)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}
	httpserver.Respond(w, http.StatusOK, wk.ToResponse())
}
