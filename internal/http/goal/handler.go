package goal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/http/auth"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// IDRoutes mounts the single-goal surface inside the /goals/{id} subrouter.
func (h *Handler) IDRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Patch("/", h.update)
	r.Post("/pause", h.pause)
	r.Post("/resume", h.resume)
	r.Get("/milestones", h.milestones)
	r.Get("/contributions", h.history)
}

type createGoalRequest struct {
	Name                string                  `json:"name"`
	TargetAmount        decimal.Decimal         `json:"target_amount"`
	Priority            int                     `json:"priority"`
	AutoTransferAmount  *decimal.Decimal        `json:"auto_transfer_amount,omitempty"`
	AutoTransferPercent *decimal.Decimal        `json:"auto_transfer_percent,omitempty"`
	MilestoneBonuses    map[int]decimal.Decimal `json:"milestone_bonuses,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateParams{
		OwnerChildID:        identity.UserID,
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		Priority:            req.Priority,
		AutoTransferAmount:  req.AutoTransferAmount,
		AutoTransferPercent: req.AutoTransferPercent,
		MilestoneBonuses:    req.MilestoneBonuses,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	childID := identity.UserID

	if s := r.URL.Query().Get("child_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid child_id", http.StatusBadRequest)
			return
		}

		childID = id
	}

	goals, err := h.svc.List(r.Context(), childID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(goals)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateGoalRequest struct {
	Name                *string          `json:"name,omitempty"`
	Priority            *int             `json:"priority,omitempty"`
	AutoTransferAmount  *decimal.Decimal `json:"auto_transfer_amount,omitempty"`
	AutoTransferPercent *decimal.Decimal `json:"auto_transfer_percent,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Update(r.Context(), id, goal.UpdateParams{
		Name:                req.Name,
		Priority:            req.Priority,
		AutoTransferAmount:  req.AutoTransferAmount,
		AutoTransferPercent: req.AutoTransferPercent,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(g)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Pause)
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Resume)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, do func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := do(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) milestones(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	milestones, err := h.svc.Milestones(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toMilestoneResponseList(milestones)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ledger, err := h.svc.History(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toContributionResponseList(ledger)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, goal.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, goal.ErrInvalidTransition), errors.Is(err, goal.ErrNotActive):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type goalResponse struct {
	ID                  uuid.UUID        `json:"id"`
	OwnerChildID        uuid.UUID        `json:"owner_child_id"`
	Name                string           `json:"name"`
	TargetAmount        decimal.Decimal  `json:"target_amount"`
	CurrentAmount       decimal.Decimal  `json:"current_amount"`
	Status              goal.Status      `json:"status"`
	Priority            int              `json:"priority"`
	AutoTransferAmount  *decimal.Decimal `json:"auto_transfer_amount,omitempty"`
	AutoTransferPercent *decimal.Decimal `json:"auto_transfer_percent,omitempty"`
	PurchaseNotes       string           `json:"purchase_notes,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	resp := goalResponse{
		ID:                  g.ID,
		OwnerChildID:        g.OwnerChildID,
		Name:                g.Name,
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		Status:              g.Status,
		Priority:            g.Priority,
		AutoTransferAmount:  g.AutoTransferAmount,
		AutoTransferPercent: g.AutoTransferPercent,
		CreatedAt:           g.CreatedAt,
	}

	if g.PurchaseNotes != nil {
		resp.PurchaseNotes = *g.PurchaseNotes
	}

	return resp
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toResponse(g))
	}

	return out
}

type milestoneResponse struct {
	ID              uuid.UUID       `json:"id"`
	PercentComplete int             `json:"percent_complete"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	IsAchieved      bool            `json:"is_achieved"`
	AchievedAt      *time.Time      `json:"achieved_at,omitempty"`
}

func toMilestoneResponseList(milestones []*goal.Milestone) []milestoneResponse {
	out := make([]milestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, milestoneResponse{
			ID:              m.ID,
			PercentComplete: m.PercentComplete,
			TargetAmount:    m.TargetAmount,
			BonusAmount:     m.BonusAmount,
			IsAchieved:      m.IsAchieved,
			AchievedAt:      m.AchievedAt,
		})
	}

	return out
}

type contributionResponse struct {
	ID               uuid.UUID             `json:"id"`
	Amount           decimal.Decimal       `json:"amount"`
	Type             goal.ContributionType `json:"type"`
	Description      string                `json:"description,omitempty"`
	GoalBalanceAfter decimal.Decimal       `json:"goal_balance_after"`
	SourceID         *uuid.UUID            `json:"source_id,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

func toContributionResponseList(ledger []*goal.Contribution) []contributionResponse {
	out := make([]contributionResponse, 0, len(ledger))
	for _, c := range ledger {
		out = append(out, contributionResponse{
			ID:               c.ID,
			Amount:           c.Amount,
			Type:             c.Type,
			Description:      c.Description,
			GoalBalanceAfter: c.GoalBalanceAfter,
			SourceID:         c.SourceID,
			CreatedAt:        c.CreatedAt,
		})
	}

	return out
}
