package account

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/goal"
)

type Handler struct {
	goals *goal.Service
}

func NewHandler(goals *goal.Service) *Handler {
	return &Handler{goals: goals}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{childID}/balance", h.balance)
}

type balanceResponse struct {
	ChildID uuid.UUID       `json:"child_id"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	childID, err := uuid.Parse(chi.URLParam(r, "childID"))
	if err != nil {
		http.Error(w, "invalid child id", http.StatusBadRequest)
		return
	}

	balance, err := h.goals.Balance(r.Context(), childID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(balanceResponse{ChildID: childID, Balance: balance}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
