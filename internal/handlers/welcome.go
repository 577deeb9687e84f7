package handlers

import (
	"net/http"

	"github.com/tasklab/todo-portal/internal/common"
)

// WelcomeHandler serves the service info document at the root path.
type WelcomeHandler struct {
	logger *common.Logger
}

// NewWelcomeHandler creates a new welcome handler.
func NewWelcomeHandler(logger *common.Logger) *WelcomeHandler {
	return &WelcomeHandler{logger: logger}
}

// ServeHTTP handles GET /.
func (h *WelcomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The root pattern matches every unrouted path; anything but / itself
	// is an unknown endpoint.
	if r.URL.Path != "/" {
		WriteDetail(w, http.StatusNotFound, "The requested endpoint does not exist")
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the To-Do API with MCP Server!",
		"todos":   "/todos",
		"mcp":     "/mcp",
		"health":  "/health",
		"features": []string{
			"REST API endpoints for CRUD operations",
			"MCP server for tool-based interactions",
			"CORS support for frontend integration",
		},
	})
}
