package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/service/goal"
)

type goalService interface {
	Create(ctx context.Context, input goal.CreateGoalInput) (domain.Goal, error)
	Patch(ctx context.Context, input goal.PatchGoalInput) (domain.Goal, error)
	Delete(ctx context.Context, input goal.DeleteGoalInput) error
	List(ctx context.Context, year int) ([]domain.Goal, error)
}

// GoalHandler serves /goals.
type GoalHandler struct {
	svc goalService
	log *slog.Logger
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(svc goalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{svc: svc, log: logger.With("handler", "goals")}
}

type goalResponse struct {
	ID        string  `json:"id"`
	Year      int     `json:"year"`
	Title     string  `json:"title"`
	Kind      *string `json:"kind"`
	Status    string  `json:"status"`
	Target    *int64  `json:"target"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Create handles POST /goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateGoalInput{
		Year:   yearValue(body["year"]),
		Title:  stringValue(body["title"]),
		Kind:   optionalString(body, "kind"),
		Status: optionalString(body, "status"),
		Target: optionalInt(body, "target"),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]goalResponse{"goal": toGoalResponse(g)})
}

// List handles GET /goals?year=.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context(), queryYear(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]goalResponse, len(goals))
	for i, g := range goals {
		out[i] = toGoalResponse(g)
	}
	writeJSON(w, http.StatusOK, map[string][]goalResponse{"goals": out})
}

// Patch handles PATCH /goals/{id} with body {"year": ..., "patch": {...}}.
func (h *GoalHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id := goalID(r)
	if id == "" {
		writeFieldError(w, "goalId", "goalId is required")
		return
	}

	body, err := decodeBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	switch p := body["patch"].(type) {
	case nil:
	case map[string]any:
		for k, v := range p {
			fields[k] = patchValue(v)
		}
	default:
		writeFieldError(w, "patch", "patch must be an object")
		return
	}

	g, err := h.svc.Patch(r.Context(), goal.PatchGoalInput{
		Year:   yearValue(body["year"]),
		GoalID: id,
		Fields: fields,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]goalResponse{"goal": toGoalResponse(g)})
}

// Delete handles DELETE /goals/{id}?year=.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), goal.DeleteGoalInput{
		Year:   queryYear(r),
		GoalID: goalID(r),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func goalID(r *http.Request) string {
	return strings.Trim(r.PathValue("id"), "/ ")
}

func toGoalResponse(g domain.Goal) goalResponse {
	resp := goalResponse{
		ID:        g.ID,
		Year:      g.Year,
		Title:     g.Title,
		Status:    g.Status.String(),
		Target:    g.Target,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if g.Kind != nil {
		k := g.Kind.String()
		resp.Kind = &k
	}
	return resp
}
