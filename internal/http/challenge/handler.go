package challenge

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/challenge"
	"github.com/sproutbank/sprout/internal/goal"
)

type Handler struct {
	svc *challenge.Service
}

func NewHandler(svc *challenge.Service) *Handler {
	return &Handler{svc: svc}
}

// GoalRoutes mounts the per-goal challenge surface under /goals/{id}/challenge.
func (h *Handler) GoalRoutes(r chi.Router) {
	r.Get("/", h.active)
}

func (h *Handler) GoalParentRoutes(r chi.Router) {
	r.Post("/", h.create)
}

// Routes mounts the challenge collection under /challenges.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{challengeID}", h.get)
	r.Delete("/{challengeID}", h.cancel)
	r.Post("/sweep", h.sweep)
}

type createChallengeRequest struct {
	TargetAmount decimal.Decimal `json:"target_amount"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	BonusAmount  decimal.Decimal `json:"bonus_amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), challenge.CreateParams{
		GoalID:       goalID,
		TargetAmount: req.TargetAmount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		BonusAmount:  req.BonusAmount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Active(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "challengeID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "challengeID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Cancel(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sweepResponse struct {
	Failed int64 `json:"failed"`
}

// sweep fails every expired active challenge. Wired to the platform scheduler.
func (h *Handler) sweep(w http.ResponseWriter, r *http.Request) {
	failed, err := h.svc.SweepExpired(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(sweepResponse{Failed: failed}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, challenge.ErrNotFound), errors.Is(err, goal.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, challenge.ErrActiveExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, challenge.ErrNotActive), errors.Is(err, goal.ErrNotActive):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, goal.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type challengeResponse struct {
	ID           uuid.UUID        `json:"id"`
	GoalID       uuid.UUID        `json:"goal_id"`
	TargetAmount decimal.Decimal  `json:"target_amount"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	BonusAmount  decimal.Decimal  `json:"bonus_amount"`
	Status       challenge.Status `json:"status"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
}

func toResponse(c *challenge.Challenge) challengeResponse {
	return challengeResponse{
		ID:           c.ID,
		GoalID:       c.GoalID,
		TargetAmount: c.TargetAmount,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		BonusAmount:  c.BonusAmount,
		Status:       c.Status,
		CompletedAt:  c.CompletedAt,
	}
}
