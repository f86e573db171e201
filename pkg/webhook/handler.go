package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/txn"
	"github.com/ANGHOOO/godlife/pkg/exerciseplan"
)

// Handler exposes the webhook ingress HTTP surface (§6.2).
type Handler struct {
	logger *slog.Logger
	dedup  *Deduplicator
}

// NewHandler builds a Handler with an optional Redis-backed dedup fast
// path. rdb may be nil to skip the cache entirely.
func NewHandler(logger *slog.Logger, rdb *redis.Client) *Handler {
	var dedup *Deduplicator
	if rdb != nil {
		dedup = NewDeduplicator(rdb, logger)
	}
	return &Handler{logger: logger, dedup: dedup}
}

// RegisterRoutes mounts POST /webhooks/{provider} under r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhooks/{provider}", h.ingest)
}

// ingest dedups the inbound event and, on first observation, dispatches
// any embedded set-result into the exercise-plan service within the same
// transaction, so both commit or both roll back together (§4.4).
func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	var req IngressRequest
	if err := httpserver.DecodeAndValidate(r, &req); err != nil {
		httpserver.RespondValidationError(w, err)
		return
	}

	dbtx := txn.FromContext(r.Context())
	svc := NewService(dbtx, h.dedup)

	raw := req.Raw
	if raw == nil {
		raw, _ = json.Marshal(req)
	}

	ev, created, err := svc.HandleEvent(r.Context(), provider, req.EventType, req.UserID, req.IdempotencyKey, req.EventID, raw)
	if err != nil {
		httpserver.RespondError(w, h.logger, err)
		return
	}

	result := "duplicate"
	if created {
		result = "accepted"
		if req.SetResult != nil {
			planSvc := exerciseplan.NewService(dbtx)
			if _, err := planSvc.SubmitSetResult(r.Context(), req.SetResult.PlanID, req.SetResult.SessionID, req.SetResult.SetNo, req.SetResult.Result, req.SetResult.PerformedReps, req.SetResult.PerformedWeight, ev.CreatedAt); err != nil {
				httpserver.RespondError(w, h.logger, err)
				return
			}
		}
	}

	httpserver.Respond(w, http.StatusOK, Outcome{Result: result, EventID: ev.ID})
}
