package registry

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/tasklab/todo-portal/internal/common"
)

// Handler exposes the registry's introspection and invocation endpoints
// over HTTP, mounted at a fixed prefix:
//
//	GET  {prefix}                    registry identity
//	GET  {prefix}/tools              tool name -> {description, parameters}
//	POST {prefix}/tools/{name}       invoke tool with a flat JSON argument bag
//	GET  {prefix}/resources          resource name -> {description}
//	GET  {prefix}/resources/{name}   invoke resource
type Handler struct {
	registry *Registry
	prefix   string
	logger   *common.Logger
}

// NewHandler creates a dispatcher HTTP handler serving reg under prefix.
func NewHandler(reg *Registry, prefix string, logger *common.Logger) *Handler {
	return &Handler{
		registry: reg,
		prefix:   strings.TrimSuffix(prefix, "/"),
		logger:   logger,
	}
}

// resultEnvelope wraps every successful invocation.
type resultEnvelope struct {
	Result any `json:"result"`
}

// detailEnvelope carries error details, mirroring the REST surface.
type detailEnvelope struct {
	Detail string `json:"detail"`
}

// ServeHTTP routes dispatcher requests by sub-path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.Trim(strings.TrimPrefix(r.URL.Path, h.prefix), "/")

	switch {
	case rel == "":
		h.handleInfo(w, r)
	case rel == "tools":
		h.handleListTools(w, r)
	case strings.HasPrefix(rel, "tools/"):
		h.handleInvokeTool(w, r, strings.TrimPrefix(rel, "tools/"))
	case rel == "resources":
		h.handleListResources(w, r)
	case strings.HasPrefix(rel, "resources/"):
		h.handleInvokeResource(w, r, strings.TrimPrefix(rel, "resources/"))
	default:
		h.writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

// handleInfo serves GET {prefix}: registry identity and entry names.
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	if !h.requireMethod(w, r, http.MethodGet) {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"name":        h.registry.Name(),
		"description": h.registry.Description(),
		"tools":       h.registry.ToolNames(),
		"resources":   h.registry.ResourceNames(),
	})
}

// handleListTools serves GET {prefix}/tools: pure introspection.
func (h *Handler) handleListTools(w http.ResponseWriter, r *http.Request) {
	if !h.requireMethod(w, r, http.MethodGet) {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"tools": h.registry.ListTools(),
	})
}

// handleListResources serves GET {prefix}/resources.
func (h *Handler) handleListResources(w http.ResponseWriter, r *http.Request) {
	if !h.requireMethod(w, r, http.MethodGet) {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"resources": h.registry.ListResources(),
	})
}

// handleInvokeTool serves POST {prefix}/tools/{name}. The body is a flat
// JSON object of named arguments; an empty body means no arguments.
func (h *Handler) handleInvokeTool(w http.ResponseWriter, r *http.Request, name string) {
	if !h.requireMethod(w, r, http.MethodPost) {
		return
	}

	args, err := decodeArgs(r.Body)
	if err != nil {
		h.writeDetail(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := h.registry.InvokeTool(name, args)
	if err != nil {
		h.writeInvocationError(w, r, name, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resultEnvelope{Result: result})
}

// handleInvokeResource serves GET {prefix}/resources/{name}.
func (h *Handler) handleInvokeResource(w http.ResponseWriter, r *http.Request, name string) {
	if !h.requireMethod(w, r, http.MethodGet) {
		return
	}

	result, err := h.registry.InvokeResource(name)
	if err != nil {
		h.writeInvocationError(w, r, name, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resultEnvelope{Result: result})
}

// writeInvocationError maps dispatcher errors to HTTP: unknown names are
// 404, everything an operation raises is 500 with the message surfaced in
// the detail field. A domain-level "not found" raised inside a tool also
// lands on 500; that asymmetry matches the dispatcher contract.
func (h *Handler) writeInvocationError(w http.ResponseWriter, r *http.Request, name string, err error) {
	if IsNotFound(err) {
		h.writeDetail(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.Warn().
		Str("name", name).
		Str("path", r.URL.Path).
		Str("error", err.Error()).
		Msg("tool invocation failed")
	h.writeDetail(w, http.StatusInternalServerError, err.Error())
}

// decodeArgs decodes the request body into a flat argument map.
// Empty bodies decode to an empty map.
func decodeArgs(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func (h *Handler) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	h.writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Str("error", err.Error()).Msg("failed to encode dispatcher response")
	}
}

func (h *Handler) writeDetail(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSON(w, statusCode, detailEnvelope{Detail: message})
}
