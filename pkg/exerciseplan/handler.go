package exerciseplan

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/txn"
)

// Handler exposes the plan/set-result HTTP surface (§6.2).
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a Handler. The service itself is constructed
// per-request from the ambient transaction, so Handler carries no store.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes mounts the plan endpoints under r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/plans/generate", h.generate)
	r.Post("/plans/{planID}/sessions/{sessionID}/sets/{setNo}/result", h.submitResult)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}

	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "target_date must be YYYY-MM-DD"})
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	plan, err := svc.GeneratePlan(r.Context(), req.UserID, targetDate, req.Source)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}

	httpserver.Respond(w, http.StatusCreated, PlanResponse{
		ID:         plan.ID,
		UserID:     plan.UserID,
		TargetDate: plan.TargetDate.Format("2006-01-02"),
		Source:     plan.Source,
		Status:     plan.Status,
	})
}

func (h *Handler) submitResult(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "invalid plan id"})
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "invalid session id"})
		return
	}
	setNo, err := strconv.Atoi(chi.URLParam(r, "setNo"))
	if err != nil {
		httpserver.Respond(w, http.StatusBadRequest, httpserver.ErrorResponse{Error: "validation_error", Message: "invalid set_no"})
		return
	}

	var req SetResultRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	outcome, err := svc.SubmitSetResult(r.Context(), planID, sessionID, setNo, req.Result, req.PerformedReps, req.PerformedWeight, time.Time{})
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}

	httpserver.Respond(w, http.StatusOK, outcome)
}
