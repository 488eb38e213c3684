package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/math-s/yeargoals/internal/adapter/memory"
	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/provider"
	"github.com/math-s/yeargoals/internal/service/action"
	"github.com/math-s/yeargoals/internal/service/goal"
	"github.com/math-s/yeargoals/internal/service/library"
	"github.com/math-s/yeargoals/internal/service/stats"
	"github.com/math-s/yeargoals/internal/transport/rest"
)

const owner = "USER#me"

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }

type stubLookup struct {
	books map[string]*provider.BookResult
	err   error
}

func (s stubLookup) LookupISBN(_ context.Context, isbn string) (*provider.BookResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.books[isbn], nil
}

func strPtr(s string) *string { return &s }

var cleanCode = stubLookup{books: map[string]*provider.BookResult{
	"9780132350884": {
		VolumeID: strPtr("vol-1"),
		Title:    strPtr("Clean Code"),
		Authors:  []string{"Robert C. Martin"},
	},
}}

func newServer(t *testing.T, lookup stubLookup) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	lib := library.NewService(log, store, lookup, owner, fixedClock{})
	actions := action.NewService(log, store, lib, action.Config{Owner: owner, Clock: fixedClock{}})

	return rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(store, "test"),
		Actions: rest.NewActionHandler(actions, log),
		Goals:   rest.NewGoalHandler(goal.NewService(log, store, owner, fixedClock{}), log),
		Stats:   rest.NewStatsHandler(stats.NewService(log, store, owner), log),
		Books:   rest.NewBookHandler(lib, log),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out), rec.Body.String())
	}
	return rec.Code, out
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func TestActions_CreateBJJUpdatesStats(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, body := do(t, h, http.MethodPost, "/actions", `{"year": 2026, "type": " bjj "}`)
	require.Equal(t, http.StatusCreated, code)

	a := body["action"].(map[string]any)
	assert.Equal(t, float64(2026), a["year"])
	assert.Equal(t, "BJJ", a["type"])
	assert.Equal(t, "2026-02-03T04:05:06Z", a["ts"])
	assert.Len(t, a["id"], 32)

	code, body = do(t, h, http.MethodGet, "/stats?year=2026", "")
	require.Equal(t, http.StatusOK, code)
	s := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), s["bjjCount"])
	assert.Equal(t, float64(0), s["pilatesCount"])
	assert.Equal(t, "2026-02-03T04:05:06Z", s["updatedAt"])
}

func TestActions_YearAsString(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, _ := do(t, h, http.MethodPost, "/actions", `{"year": "2026", "type": "PILATES"}`)
	assert.Equal(t, http.StatusCreated, code)
}

func TestActions_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantError string
		wantField string
	}{
		{"missing body", "", "Missing request body", ""},
		{"invalid json", `{"year":`, "Invalid JSON body", ""},
		{"array body", `[1,2]`, "JSON body must be an object", ""},
		{"no year", `{"type":"BJJ"}`, "year is required", "year"},
		{"year out of range", `{"year":1969,"type":"BJJ"}`, "year is required", "year"},
		{"fractional year", `{"year":2026.5,"type":"BJJ"}`, "year is required", "year"},
		{"bad type", `{"year":2026,"type":"RUN"}`, "type must be BJJ|PILATES|SAVE|READ", "type"},
		{"save without amount", `{"year":2026,"type":"SAVE"}`, "SAVE requires integer amountCents", "amountCents"},
		{"save string amount", `{"year":2026,"type":"SAVE","amountCents":"100"}`, "SAVE requires integer amountCents", "amountCents"},
		{"save fractional amount", `{"year":2026,"type":"SAVE","amountCents":1.5}`, "SAVE requires integer amountCents", "amountCents"},
		{"save bool amount", `{"year":2026,"type":"SAVE","amountCents":true}`, "SAVE requires integer amountCents", "amountCents"},
		{"read bad isbn", `{"year":2026,"type":"READ","isbn":"not-an-isbn"}`, "READ requires valid isbn (ISBN-10 or ISBN-13)", "isbn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newServer(t, cleanCode)

			code, body := do(t, h, http.MethodPost, "/actions", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			}

			_, body = do(t, h, http.MethodGet, "/actions?year=2026", "")
			assert.Empty(t, body["actions"])
		})
	}
}

func TestActions_SaveNegativeAmountAccepted(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, _ := do(t, h, http.MethodPost, "/actions", `{"year":2026,"type":"SAVE","amountCents":500}`)
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, h, http.MethodPost, "/actions", `{"year":2026,"type":"SAVE","amountCents":-200}`)
	require.Equal(t, http.StatusCreated, code)

	_, body := do(t, h, http.MethodGet, "/stats?year=2026", "")
	assert.Equal(t, float64(300), body["stats"].(map[string]any)["savedCentsTotal"])
}

func TestActions_ReadResolvesBook(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, _ := do(t, h, http.MethodPost, "/actions",
		`{"year":2026,"type":"READ","isbn":"978-0-13-235088-4","note":"  ch. 1  ","ts":"2026-01-10T08:00:00Z"}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := do(t, h, http.MethodGet, "/actions?year=2026&type=read", "")
	require.Equal(t, http.StatusOK, code)
	list := body["actions"].([]any)
	require.Len(t, list, 1)
	a := list[0].(map[string]any)
	assert.Equal(t, "9780132350884", a["isbn"])
	assert.Equal(t, "Clean Code", a["bookTitle"])
	assert.Equal(t, []any{"Robert C. Martin"}, a["bookAuthors"])
	assert.Equal(t, "2026-01-10T08:00:00Z", a["ts"])
	assert.Nil(t, a["amountCents"])

	_, body = do(t, h, http.MethodGet, "/stats?year=2026", "")
	s := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), s["readBooksTotal"])
	assert.Equal(t, float64(1), s["readCount"])

	code, body = do(t, h, http.MethodGet, "/books/0-13-235088-X", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", body["error"])

	code, body = do(t, h, http.MethodGet, "/books/978-0132350884", "")
	require.Equal(t, http.StatusOK, code)
	b := body["book"].(map[string]any)
	assert.Equal(t, "Clean Code", b["title"])
	assert.Equal(t, false, b["inLibrary"])
}

func TestActions_ReadLookupOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		h := newServer(t, stubLookup{})

		code, body := do(t, h, http.MethodPost, "/actions", `{"year":2026,"type":"READ","isbn":"0000000000"}`)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "book_not_found_for_isbn", body["error"])
	})

	t.Run("provider down", func(t *testing.T) {
		t.Parallel()
		h := newServer(t, stubLookup{err: errors.New("dial tcp: connection refused")})

		code, body := do(t, h, http.MethodPost, "/actions", `{"year":2026,"type":"READ","isbn":"9780132350884"}`)
		assert.Equal(t, http.StatusBadGateway, code)
		assert.Equal(t, map[string]any{"error": "google_books_lookup_failed"}, body)

		_, body = do(t, h, http.MethodGet, "/stats?year=2026", "")
		assert.Equal(t, float64(0), body["stats"].(map[string]any)["readCount"])
	})
}

func TestActions_ListParams(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, body := do(t, h, http.MethodGet, "/actions", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "year is required (e.g. ?year=2026)", body["error"])

	code, body = do(t, h, http.MethodGet, "/actions?year=2026&limit=ten", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "limit must be an integer", body["error"])

	for _, ts := range []string{"2026-01-01T00:00:00Z", "2026-03-01T00:00:00Z", "2026-02-01T00:00:00Z"} {
		code, _ := do(t, h, http.MethodPost, "/actions", `{"year":2026,"type":"BJJ","ts":"`+ts+`"}`)
		require.Equal(t, http.StatusCreated, code)
	}

	_, body = do(t, h, http.MethodGet, "/actions?year=2026&limit=2", "")
	list := body["actions"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-03-01T00:00:00Z", list[0].(map[string]any)["ts"])
	assert.Equal(t, "2026-02-01T00:00:00Z", list[1].(map[string]any)["ts"])

	_, body = do(t, h, http.MethodGet, "/actions?year=2026&limit=0", "")
	assert.Len(t, body["actions"], 1)
}

// ---------------------------------------------------------------------------
// Goals
// ---------------------------------------------------------------------------

func TestGoals_Lifecycle(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, body := do(t, h, http.MethodPost, "/goals", `{"year":2026,"kind":"bjj_sessions","target":100}`)
	require.Equal(t, http.StatusCreated, code)
	g := body["goal"].(map[string]any)
	assert.Equal(t, "BJJ_SESSIONS", g["title"])
	assert.Equal(t, "BJJ_SESSIONS", g["kind"])
	assert.Equal(t, "todo", g["status"])
	assert.Equal(t, float64(100), g["target"])
	id := g["id"].(string)

	code, body = do(t, h, http.MethodPost, "/goals", `{"year":2026,"title":"Learn to surf"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Nil(t, body["goal"].(map[string]any)["kind"])

	code, body = do(t, h, http.MethodPatch, "/goals/"+id, `{"year":2026,"patch":{"status":"done","color":"red"}}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "done", body["goal"].(map[string]any)["status"])
	assert.Equal(t, float64(100), body["goal"].(map[string]any)["target"])

	_, body = do(t, h, http.MethodGet, "/goals?year=2026", "")
	goals := body["goals"].([]any)
	require.Len(t, goals, 2)
	assert.Equal(t, "Learn to surf", goals[0].(map[string]any)["title"])
	assert.Equal(t, id, goals[1].(map[string]any)["id"])

	code, body = do(t, h, http.MethodDelete, "/goals/"+id+"?year=2026", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"ok": true}, body)

	code, _ = do(t, h, http.MethodDelete, "/goals/"+id+"?year=2026", "")
	assert.Equal(t, http.StatusOK, code)

	_, body = do(t, h, http.MethodGet, "/goals?year=2026", "")
	assert.Len(t, body["goals"], 1)
}

func TestGoals_Errors(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	tests := []struct {
		name      string
		method    string
		target    string
		body      string
		wantCode  int
		wantError string
	}{
		{"create structured without target", http.MethodPost, "/goals", `{"year":2026,"kind":"BOOKS_FINISHED"}`, 400, "target must be a positive integer"},
		{"create string target", http.MethodPost, "/goals", `{"year":2026,"kind":"BOOKS_FINISHED","target":"12"}`, 400, "target must be a positive integer"},
		{"create bad status", http.MethodPost, "/goals", `{"year":2026,"title":"x","status":"later"}`, 400, "status must be todo|doing|done"},
		{"create no title", http.MethodPost, "/goals", `{"year":2026}`, 400, "title is required"},
		{"patch bad status", http.MethodPatch, "/goals/abc", `{"year":2026,"patch":{"status":"nope"}}`, 400, "status must be todo|doing|done"},
		{"patch not object", http.MethodPatch, "/goals/abc", `{"year":2026,"patch":"x"}`, 400, "patch must be an object"},
		{"patch nothing", http.MethodPatch, "/goals/abc", `{"year":2026}`, 400, "no valid fields to patch"},
		{"patch float target", http.MethodPatch, "/goals/abc", `{"year":2026,"patch":{"target":2.0}}`, 400, "target must be a positive integer"},
		{"patch missing goal", http.MethodPatch, "/goals/abc", `{"year":2026,"patch":{"title":"x"}}`, 404, "not_found"},
		{"delete without year", http.MethodDelete, "/goals/abc", "", 400, "year is required (e.g. ?year=2026)"},
		{"list without year", http.MethodGet, "/goals", "", 400, "year is required (e.g. ?year=2026)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func TestBooks_AddAndList(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, body := do(t, h, http.MethodPost, "/books", `{"isbn":9780132350884}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, map[string]any{
		"isbn":    "9780132350884",
		"sk":      "BOOK#9780132350884",
		"title":   "Clean Code",
		"authors": []any{"Robert C. Martin"},
	}, body["book"])

	code, body = do(t, h, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, code)
	books := body["books"].([]any)
	require.Len(t, books, 1)
	b := books[0].(map[string]any)
	assert.Equal(t, true, b["inLibrary"])
	assert.Equal(t, "2026-02-03T04:05:06Z", b["createdAt"])
	assert.Equal(t, []any{}, b["categories"])

	code, body = do(t, h, http.MethodPost, "/books", `{"isbn":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "isbn is required (ISBN-10 or ISBN-13)", body["error"])

	code, body = do(t, h, http.MethodGet, "/books?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "limit must be an integer", body["error"])
}

// ---------------------------------------------------------------------------
// Routing and error mapping
// ---------------------------------------------------------------------------

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/nope"},
		{http.MethodPut, "/actions"},
		{http.MethodDelete, "/stats"},
	} {
		code, body := do(t, h, tc.method, tc.target, "")
		assert.Equal(t, http.StatusNotFound, code, tc.method+" "+tc.target)
		assert.Equal(t, map[string]any{"error": "not_found"}, body)
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	h := newServer(t, cleanCode)

	code, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "test", body["version"])
}

type failingStats struct{}

func (failingStats) Get(context.Context, int) (domain.Stats, error) {
	return domain.Stats{}, errors.New("pool exhausted")
}

func TestHandleError_InternalCarriesRequestID(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	h := rest.NewStatsHandler(failingStats{}, log)

	req := httptest.NewRequest(http.MethodGet, "/stats?year=2026", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_error", body["error"])
	assert.Contains(t, body, "requestId")
	assert.NotContains(t, rec.Body.String(), "pool exhausted")
	assert.Contains(t, logs.String(), "pool exhausted")
}
