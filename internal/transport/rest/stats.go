package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/math-s/yeargoals/internal/domain"
)

type statsService interface {
	Get(ctx context.Context, year int) (domain.Stats, error)
}

// StatsHandler serves /stats.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type statsResponse struct {
	Year            int     `json:"year"`
	BJJCount        int64   `json:"bjjCount"`
	PilatesCount    int64   `json:"pilatesCount"`
	SavedCentsTotal int64   `json:"savedCentsTotal"`
	ReadBooksTotal  int64   `json:"readBooksTotal"`
	ReadCount       int64   `json:"readCount"`
	UpdatedAt       *string `json:"updatedAt"`
}

// Get handles GET /stats?year=.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), queryYear(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]statsResponse{"stats": {
		Year:            s.Year,
		BJJCount:        s.BJJCount,
		PilatesCount:    s.PilatesCount,
		SavedCentsTotal: s.SavedCentsTotal,
		ReadBooksTotal:  s.ReadBooksTotal,
		ReadCount:       s.ReadCount,
		UpdatedAt:       s.UpdatedAt,
	}})
}
