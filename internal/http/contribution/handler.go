package contribution

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/contribution"
	"github.com/sproutbank/sprout/internal/goal"
)

type Handler struct {
	svc *contribution.Service
}

func NewHandler(svc *contribution.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts under /goals/{id}; the money-moving parent actions are gated
// by the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/contributions", h.contribute)
}

// ParentRoutes are the parent-only money movements on a goal.
func (h *Handler) ParentRoutes(r chi.Router) {
	r.Post("/withdrawals", h.withdraw)
	r.Post("/purchase", h.markPurchased)
	r.Post("/cancel", h.cancel)
}

type contributeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type progressResponse struct {
	GoalID             uuid.UUID        `json:"goal_id"`
	NewAmount          decimal.Decimal  `json:"new_amount"`
	TargetAmount       decimal.Decimal  `json:"target_amount"`
	Percentage         decimal.Decimal  `json:"percentage"`
	MilestoneReached   *int             `json:"milestone_reached,omitempty"`
	IsCompleted        bool             `json:"is_completed"`
	MatchAmountAdded   *decimal.Decimal `json:"match_amount_added,omitempty"`
	ChallengeCompleted bool             `json:"challenge_completed"`
	OccurredAt         time.Time        `json:"occurred_at"`
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.svc.Contribute(r.Context(), goalID, req.Amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(progressResponse{
		GoalID:             event.GoalID,
		NewAmount:          event.NewAmount,
		TargetAmount:       event.TargetAmount,
		Percentage:         event.Percentage,
		MilestoneReached:   event.MilestoneReached,
		IsCompleted:        event.IsCompleted,
		MatchAmountAdded:   event.MatchAmountAdded,
		ChallengeCompleted: event.ChallengeCompleted,
		OccurredAt:         event.OccurredAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type withdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type withdrawResponse struct {
	GoalID           uuid.UUID       `json:"goal_id"`
	Amount           decimal.Decimal `json:"amount"`
	GoalBalanceAfter decimal.Decimal `json:"goal_balance_after"`
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Withdraw(r.Context(), goalID, req.Amount, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(withdrawResponse{
		GoalID:           c.GoalID,
		Amount:           c.Amount,
		GoalBalanceAfter: c.GoalBalanceAfter,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type purchaseRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) markPurchased(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkPurchased(r.Context(), goalID, req.Notes); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Cancel(r.Context(), goalID, req.Reason); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, goal.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, goal.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, goal.ErrNotActive), errors.Is(err, goal.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, contribution.ErrLockTimeout):
		http.Error(w, "goal is busy, retry", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
