package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/config"
	"github.com/tasklab/todo-portal/internal/registry"
)

// Handler is the HTTP handler for the MCP protocol endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler whose tools and resources are built
// from the dispatcher registry.
func NewHandler(cfg *config.Config, reg *registry.Registry, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		cfg.Dispatcher.Name,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
	)

	toolCount := RegisterTools(mcpSrv, reg)
	resourceCount := RegisterResources(mcpSrv, reg)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount).
		Int("resources", resourceCount).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
