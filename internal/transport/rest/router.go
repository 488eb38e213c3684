package rest

import "net/http"

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health  *HealthHandler
	Actions *ActionHandler
	Goals   *GoalHandler
	Stats   *StatsHandler
	Books   *BookHandler
}

// HealthPaths are served without the admin token.
var HealthPaths = []string{"/health", "/live", "/ready"}

// NewRouter builds the route table. Anything unmatched, including a known
// path with an unsupported method, answers 404 {"error":"not_found"}.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	mux.HandleFunc("GET /stats", h.Stats.Get)

	mux.HandleFunc("GET /goals", h.Goals.List)
	mux.HandleFunc("POST /goals", h.Goals.Create)
	mux.HandleFunc("PATCH /goals/{id...}", h.Goals.Patch)
	mux.HandleFunc("DELETE /goals/{id...}", h.Goals.Delete)

	mux.HandleFunc("GET /actions", h.Actions.List)
	mux.HandleFunc("POST /actions", h.Actions.Create)

	mux.HandleFunc("GET /books", h.Books.List)
	mux.HandleFunc("POST /books", h.Books.Create)
	mux.HandleFunc("GET /books/{isbn}", h.Books.Get)

	mux.HandleFunc("/", NotFound)
	return mux
}
