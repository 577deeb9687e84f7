package server

import (
	"net/http"
	"strings"

	"github.com/tasklab/todo-portal/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Service info (also catches unmatched paths)
	mux.HandleFunc("/", s.app.WelcomeHandler.ServeHTTP)

	// Liveness and build info
	mux.HandleFunc("/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/version", s.app.VersionHandler.ServeHTTP)

	// REST surface
	mux.HandleFunc("/todos", s.handleTodos)
	mux.HandleFunc("/todos/", s.handleTodos)

	// MCP protocol endpoint (streamable HTTP); registered before the
	// dispatcher prefix so the mux routes it by longest match
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp/rpc", s.app.MCPHandler)
	}

	// Tool dispatcher surface
	mux.HandleFunc("/mcp", s.app.DispatcherHandler.ServeHTTP)
	mux.HandleFunc("/mcp/", s.app.DispatcherHandler.ServeHTTP)

	return mux
}

// methodRouter maps HTTP methods to handlers for a single todo route.
// An unmapped method gets the JSON 405 the rest of the API uses.
type methodRouter map[string]http.HandlerFunc

func (m methodRouter) route(w http.ResponseWriter, r *http.Request) {
	handler, ok := m[r.Method]
	if !ok {
		handlers.WriteDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	handler(w, r)
}

// handleTodos dispatches /todos requests: the bare collection path routes to
// list/create, paths carrying an id route to get/update/delete.
func (s *Server) handleTodos(w http.ResponseWriter, r *http.Request) {
	rel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/todos"), "/")

	if rel == "" {
		methodRouter{
			http.MethodGet:  s.app.TodoHandler.List,
			http.MethodPost: s.app.TodoHandler.Create,
		}.route(w, r)
		return
	}

	methodRouter{
		http.MethodGet:    s.app.TodoHandler.Get,
		http.MethodPut:    s.app.TodoHandler.Update,
		http.MethodDelete: s.app.TodoHandler.Delete,
	}.route(w, r)
}
