package user

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/txn"
)

// Handler exposes the auth-resolve HTTP surface (§6.2). Authentication
// itself is out of scope (§1) — this endpoint only maps an external id to
// a User record.
type Handler struct {
	logger *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// RegisterRoutes mounts POST /auth/resolve under r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/resolve", h.resolve)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}

	svc := NewService(txn.FromContext(r.Context()))
	u, err := svc.Resolve(r.Context(), req.ExternalID, req.Name)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}
	httpserver.Respond(w, http.StatusOK, u.ToResponse())
}
