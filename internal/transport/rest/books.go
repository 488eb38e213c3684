package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/service/library"
)

type libraryService interface {
	Add(ctx context.Context, input library.AddBookInput) (domain.Book, error)
	Get(ctx context.Context, rawISBN string) (domain.Book, error)
	List(ctx context.Context, input library.ListBooksInput) ([]domain.Book, error)
}

// BookHandler serves /books.
type BookHandler struct {
	svc libraryService
	log *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(svc libraryService, logger *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: logger.With("handler", "books")}
}

type addedBook struct {
	ISBN    string   `json:"isbn"`
	SK      string   `json:"sk"`
	Title   *string  `json:"title"`
	Authors []string `json:"authors"`
}

type bookResponse struct {
	ISBN            string          `json:"isbn"`
	Title           *string         `json:"title"`
	Authors         []string        `json:"authors"`
	PublishedDate   *string         `json:"publishedDate"`
	PageCount       *int64          `json:"pageCount"`
	Categories      []string        `json:"categories"`
	Thumbnail       *string         `json:"thumbnail"`
	GoogleVolumeID  *string         `json:"googleVolumeId"`
	UpdatedAt       string          `json:"updatedAt"`
	CreatedAt       string          `json:"createdAt"`
	InLibrary       bool            `json:"inLibrary"`
	GoogleFetchedAt *string         `json:"googleFetchedAt,omitempty"`
	VolumeInfo      json.RawMessage `json:"googleVolumeInfo,omitempty"`
}

// Create handles POST /books {"isbn": ...}.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.svc.Add(r.Context(), library.AddBookInput{ISBN: stringValue(body["isbn"])})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]addedBook{"book": {
		ISBN:    b.ISBN,
		SK:      b.SK(),
		Title:   b.Title,
		Authors: nonNil(b.Authors),
	}})
}

// List handles GET /books?limit=.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeFieldError(w, "limit", err.Error())
		return
	}

	books, err := h.svc.List(r.Context(), library.ListBooksInput{Limit: limit})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]bookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b, false)
	}
	writeJSON(w, http.StatusOK, map[string][]bookResponse{"books": out})
}

// Get handles GET /books/{isbn}. The full provider payload is included.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), r.PathValue("isbn"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bookResponse{"book": toBookResponse(b, true)})
}

func toBookResponse(b domain.Book, full bool) bookResponse {
	resp := bookResponse{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Authors:         nonNil(b.Authors),
		PublishedDate:   b.PublishedDate,
		PageCount:       b.PageCount,
		Categories:      nonNil(b.Categories),
		Thumbnail:       b.Thumbnail,
		GoogleVolumeID:  b.GoogleVolumeID,
		UpdatedAt:       b.UpdatedAt,
		CreatedAt:       b.CreatedAt,
		InLibrary:       b.InLibrary,
		GoogleFetchedAt: b.GoogleFetchedAt,
	}
	if full {
		resp.VolumeInfo = b.VolumeInfo
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
