package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/service/action"
)

type actionService interface {
	Ingest(ctx context.Context, input action.IngestInput) (domain.Action, error)
	List(ctx context.Context, input action.ListInput) ([]domain.Action, error)
}

// ActionHandler serves /actions.
type ActionHandler struct {
	svc actionService
	log *slog.Logger
}

// NewActionHandler creates an ActionHandler.
func NewActionHandler(svc actionService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{svc: svc, log: logger.With("handler", "actions")}
}

type createdAction struct {
	Year int    `json:"year"`
	Type string `json:"type"`
	TS   string `json:"ts"`
	ID   string `json:"id"`
}

type actionResponse struct {
	ID             string   `json:"id"`
	Year           int      `json:"year"`
	Type           string   `json:"type"`
	TS             string   `json:"ts"`
	AmountCents    *int64   `json:"amountCents"`
	ISBN           *string  `json:"isbn"`
	BookTitle      *string  `json:"bookTitle"`
	BookAuthors    []string `json:"bookAuthors"`
	Note           *string  `json:"note"`
	GoogleVolumeID *string  `json:"googleVolumeId,omitempty"`
	Pages          *int64   `json:"pages,omitempty"`
	Book           *string  `json:"book,omitempty"`
}

// Create handles POST /actions.
func (h *ActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.svc.Ingest(r.Context(), action.IngestInput{
		Year:        yearValue(body["year"]),
		Type:        stringValue(body["type"]),
		Timestamp:   stringValue(body["ts"]),
		AmountCents: optionalInt(body, "amountCents"),
		ISBN:        stringValue(body["isbn"]),
		Note:        stringValue(body["note"]),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]createdAction{
		"action": {Year: a.Year, Type: a.Kind.String(), TS: a.Timestamp, ID: a.ID},
	})
}

// List handles GET /actions?year=&type=&limit=.
func (h *ActionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeFieldError(w, "limit", err.Error())
		return
	}

	actions, err := h.svc.List(r.Context(), action.ListInput{
		Year:  queryYear(r),
		Type:  r.URL.Query().Get("type"),
		Limit: limit,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]actionResponse, len(actions))
	for i, a := range actions {
		out[i] = toActionResponse(a)
	}
	writeJSON(w, http.StatusOK, map[string][]actionResponse{"actions": out})
}

func toActionResponse(a domain.Action) actionResponse {
	authors := a.BookAuthors
	if authors == nil {
		authors = []string{}
	}
	return actionResponse{
		ID:             a.ID,
		Year:           a.Year,
		Type:           a.Kind.String(),
		TS:             a.Timestamp,
		AmountCents:    a.AmountCents,
		ISBN:           a.ISBN,
		BookTitle:      a.BookTitle,
		BookAuthors:    authors,
		Note:           a.Note,
		GoogleVolumeID: a.GoogleVolumeID,
		Pages:          a.Pages,
		Book:           a.BookText,
	}
}
