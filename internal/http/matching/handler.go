package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts under /goals/{id}/rule. Reads are open to the family; the
// router gates writes to the parent.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

func (h *Handler) ParentRoutes(r chi.Router) {
	r.Put("/", h.upsert)
	r.Delete("/", h.deactivate)
}

type upsertRuleRequest struct {
	Type           matching.RuleType `json:"type"`
	MatchRatio     decimal.Decimal   `json:"match_ratio"`
	MaxMatchAmount *decimal.Decimal  `json:"max_match_amount,omitempty"`
	ExpiresAt      *time.Time        `json:"expires_at,omitempty"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req upsertRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Upsert(r.Context(), matching.UpsertParams{
		GoalID:         goalID,
		Type:           req.Type,
		MatchRatio:     req.MatchRatio,
		MaxMatchAmount: req.MaxMatchAmount,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rule)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Get(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rule)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), goalID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matching.ErrNotFound):
		http.Error(w, "matching rule not found", http.StatusNotFound)
	case errors.Is(err, matching.ErrInvalidRule):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type ruleResponse struct {
	ID                 uuid.UUID         `json:"id"`
	GoalID             uuid.UUID         `json:"goal_id"`
	Type               matching.RuleType `json:"type"`
	MatchRatio         decimal.Decimal   `json:"match_ratio"`
	MaxMatchAmount     *decimal.Decimal  `json:"max_match_amount,omitempty"`
	TotalMatchedAmount decimal.Decimal   `json:"total_matched_amount"`
	IsActive           bool              `json:"is_active"`
	ExpiresAt          *time.Time        `json:"expires_at,omitempty"`
}

func toResponse(rule *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:                 rule.ID,
		GoalID:             rule.GoalID,
		Type:               rule.Type,
		MatchRatio:         rule.MatchRatio,
		MaxMatchAmount:     rule.MaxMatchAmount,
		TotalMatchedAmount: rule.TotalMatchedAmount,
		IsActive:           rule.IsActive,
		ExpiresAt:          rule.ExpiresAt,
	}
}
