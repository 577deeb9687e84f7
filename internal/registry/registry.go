// Package registry implements the tool-invocation dispatcher: a
// self-describing table of named callable tools and zero-argument
// read-only resources, each carrying a description and, for tools, a
// parameter schema supplied at registration time.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// ToolFunc is a registered tool operation. Arguments arrive as a flat
// mapping of parameter name to decoded JSON value.
type ToolFunc func(args map[string]any) (any, error)

// ResourceFunc is a registered resource operation. Resources take no
// arguments by contract.
type ResourceFunc func() (any, error)

// Param describes one tool parameter. Descriptors are supplied explicitly
// by the caller at registration time; the schema is stored once and never
// re-derived per call.
type Param struct {
	Name     string
	Type     string // "string", "number", "boolean"; "string" is the generic fallback
	Required bool
	Default  any
}

// ParamInfo is the wire shape of one parameter in tool introspection.
// Default is omitted when the parameter has none.
type ParamInfo struct {
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// ToolInfo is the wire shape of one tool in introspection listings.
type ToolInfo struct {
	Description string               `json:"description"`
	Parameters  map[string]ParamInfo `json:"parameters"`
}

// ResourceInfo is the wire shape of one resource in introspection listings.
type ResourceInfo struct {
	Description string `json:"description"`
}

type toolEntry struct {
	fn          ToolFunc
	description string
	params      []Param
}

type resourceEntry struct {
	fn          ResourceFunc
	description string
}

// Registry maintains the tool and resource namespaces. Names are unique
// within their namespace; re-registering a name overwrites the prior entry.
// The registry is built once at startup and read-only thereafter, but all
// access is guarded since the HTTP layer dispatches concurrently.
type Registry struct {
	mu          sync.RWMutex
	name        string
	description string
	tools       map[string]toolEntry
	resources   map[string]resourceEntry
}

// New creates an empty registry with the given identity.
func New(name, description string) *Registry {
	return &Registry{
		name:        name,
		description: description,
		tools:       make(map[string]toolEntry),
		resources:   make(map[string]resourceEntry),
	}
}

// Name returns the registry's display name.
func (r *Registry) Name() string { return r.name }

// Description returns the registry's display description.
func (r *Registry) Description() string { return r.description }

// RegisterTool stores fn under name in the tools namespace, together with
// its description and parameter schema.
func (r *Registry) RegisterTool(name, description string, params []Param, fn ToolFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[name] = toolEntry{
		fn:          fn,
		description: description,
		params:      params,
	}
}

// RegisterResource stores fn under name in the resources namespace.
// Resources carry no parameter schema.
func (r *Registry) RegisterResource(name, description string, fn ResourceFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resources[name] = resourceEntry{
		fn:          fn,
		description: description,
	}
}

// ToolNames returns all registered tool names in sorted order.
func (r *Registry) ToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResourceNames returns all registered resource names in sorted order.
func (r *Registry) ResourceNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListTools returns introspection metadata for all registered tools.
// Pure introspection; nothing is invoked.
func (r *Registry) ListTools() map[string]ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]ToolInfo, len(r.tools))
	for name, entry := range r.tools {
		params := make(map[string]ParamInfo, len(entry.params))
		for _, p := range entry.params {
			params[p.Name] = ParamInfo{
				Type:     p.Type,
				Required: p.Required,
				Default:  p.Default,
			}
		}
		out[name] = ToolInfo{
			Description: entry.description,
			Parameters:  params,
		}
	}
	return out
}

// ListResources returns introspection metadata for all registered resources.
func (r *Registry) ListResources() map[string]ResourceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]ResourceInfo, len(r.resources))
	for name, entry := range r.resources {
		out[name] = ResourceInfo{Description: entry.description}
	}
	return out
}

// ToolParams returns the parameter descriptors for a tool, in registration
// order, or false if the tool is not registered.
func (r *Registry) ToolParams(name string) ([]Param, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	params := make([]Param, len(entry.params))
	copy(params, entry.params)
	return params, true
}

// InvokeTool invokes the tool registered under name with the given argument
// bag. An unregistered name yields a NotFoundError. Any failure raised by
// the operation itself, including a panic, is re-signaled as an
// InvocationError carrying the original message; the operation's native
// error type never crosses this boundary.
func (r *Registry) InvokeTool(name string, args map[string]any) (result any, err error) {
	r.mu.RLock()
	entry, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Kind: "Tool", Name: name}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &InvocationError{Message: fmt.Sprint(rec)}
		}
	}()

	value, callErr := entry.fn(args)
	if callErr != nil {
		return nil, &InvocationError{Message: callErr.Error(), Err: callErr}
	}
	return value, nil
}

// InvokeResource invokes the resource registered under name. Same contract
// as InvokeTool, with zero arguments.
func (r *Registry) InvokeResource(name string) (result any, err error) {
	r.mu.RLock()
	entry, ok := r.resources[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Kind: "Resource", Name: name}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &InvocationError{Message: fmt.Sprint(rec)}
		}
	}()

	value, callErr := entry.fn()
	if callErr != nil {
		return nil, &InvocationError{Message: callErr.Error(), Err: callErr}
	}
	return value, nil
}
