package statement

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/statement"
)

type Handler struct {
	svc   *statement.Service
	goals *goal.Service
}

func NewHandler(svc *statement.Service, goals *goal.Service) *Handler {
	return &Handler{svc: svc, goals: goals}
}

// Routes mounts under /goals/{id}/statement.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	g, err := h.goals.Get(r.Context(), goalID)
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.svc.Filename(g, time.Now().UTC())))

	if err := h.svc.WriteCSV(r.Context(), goalID, w); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("failed to write statement", "goal_id", goalID, "error", err)
	}
}
