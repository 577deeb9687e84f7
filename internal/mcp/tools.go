// Package mcp exposes the dispatcher registry over the MCP protocol
// (streamable HTTP), so MCP clients can call the same tools the plain
// HTTP dispatcher serves.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tasklab/todo-portal/internal/registry"
)

// BuildTool converts a registry tool entry into an mcp.Tool with the
// equivalent parameter schema.
func BuildTool(name, description string, params []registry.Param) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(description)}
	for _, p := range params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(name, opts...)
}

// buildParamOption maps a registry parameter descriptor to the appropriate
// mcp-go tool option.
func buildParamOption(p registry.Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Required {
		opts = append(opts, mcp.Required())
	}
	if p.Default != nil {
		opts = append(opts, mcp.DefaultString(toString(p.Default)))
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		return mcp.WithBoolean(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, _ := json.Marshal(v)
	return string(data)
}

// toolHandler routes an MCP tool call through the dispatcher registry, so
// the MCP surface and the plain HTTP surface can never disagree about a
// tool's behavior.
func toolHandler(reg *registry.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := reg.InvokeTool(name, r.GetArguments())
		if err != nil {
			return errorResult(err.Error()), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			return errorResult("failed to encode result: " + err.Error()), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(data))},
		}, nil
	}
}

// RegisterTools registers every registry tool with the MCP server.
func RegisterTools(s *server.MCPServer, reg *registry.Registry) int {
	tools := reg.ListTools()
	count := 0
	for _, name := range reg.ToolNames() {
		params, _ := reg.ToolParams(name)
		s.AddTool(BuildTool(name, tools[name].Description, params), toolHandler(reg, name))
		count++
	}
	return count
}

// RegisterResources registers every registry resource with the MCP server
// under a todo:// URI.
func RegisterResources(s *server.MCPServer, reg *registry.Registry) int {
	resources := reg.ListResources()
	count := 0
	for _, name := range reg.ResourceNames() {
		uri := "todo://" + name
		res := mcp.NewResource(uri, name,
			mcp.WithResourceDescription(resources[name].Description),
			mcp.WithMIMEType("application/json"),
		)
		s.AddResource(res, resourceHandler(reg, name, uri))
		count++
	}
	return count
}

// resourceHandler routes an MCP resource read through the registry.
func resourceHandler(reg *registry.Registry, name, uri string) server.ResourceHandlerFunc {
	return func(ctx context.Context, r mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		result, err := reg.InvokeResource(name)
		if err != nil {
			return nil, err
		}

		text, ok := result.(string)
		if !ok {
			data, err := json.Marshal(result)
			if err != nil {
				return nil, err
			}
			text = string(data)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
