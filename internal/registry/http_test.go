package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tasklab/todo-portal/internal/common"
)

func newTestHandler() *Handler {
	reg := New("test-dispatcher", "dispatcher under test")

	reg.RegisterTool("greet", "Greets by name.", []Param{
		{Name: "name", Type: "string", Required: true},
	}, func(args map[string]any) (any, error) {
		name, _ := args["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("name is required")
		}
		return "hello " + name, nil
	})

	reg.RegisterResource("motd", "Message of the day.", func() (any, error) {
		return "stay focused", nil
	})

	return NewHandler(reg, "/mcp", common.NewSilentLogger())
}

func doRequest(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_Info(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Tools       []string `json:"tools"`
		Resources   []string `json:"resources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Name != "test-dispatcher" {
		t.Errorf("expected registry name, got %s", body.Name)
	}
	if len(body.Tools) != 1 || body.Tools[0] != "greet" {
		t.Errorf("expected tool names [greet], got %v", body.Tools)
	}
	if len(body.Resources) != 1 || body.Resources[0] != "motd" {
		t.Errorf("expected resource names [motd], got %v", body.Resources)
	}
}

func TestHandler_ListTools(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/tools", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Tools map[string]ToolInfo `json:"tools"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	info, ok := body.Tools["greet"]
	if !ok {
		t.Fatal("expected greet tool")
	}
	if info.Description != "Greets by name." {
		t.Errorf("unexpected description: %q", info.Description)
	}
	p, ok := info.Parameters["name"]
	if !ok || p.Type != "string" || !p.Required {
		t.Errorf("unexpected name parameter: %+v", p)
	}
}

func TestHandler_ListTools_DefaultOmittedWhenAbsent(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/tools", "")
	if strings.Contains(w.Body.String(), `"default"`) {
		t.Errorf("default must be omitted for parameters without one: %s", w.Body.String())
	}
}

func TestHandler_InvokeTool(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "POST", "/mcp/tools/greet", `{"name":"ada"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Result != "hello ada" {
		t.Errorf("expected result envelope, got %s", w.Body.String())
	}
}

func TestHandler_InvokeUnknownTool(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "POST", "/mcp/tools/nope", `{}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body detailEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Detail != "Tool nope not found" {
		t.Errorf("unexpected detail: %q", body.Detail)
	}
}

func TestHandler_InvokeToolOperationFailure(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "POST", "/mcp/tools/greet", `{}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body detailEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Detail != "name is required" {
		t.Errorf("expected verbatim operation error, got %q", body.Detail)
	}
}

func TestHandler_InvokeToolEmptyBody(t *testing.T) {
	h := newTestHandler()

	// An empty body is a valid empty argument bag; the operation itself
	// decides whether that is an error.
	w := doRequest(t, h, "POST", "/mcp/tools/greet", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from the operation, got %d", w.Code)
	}
}

func TestHandler_InvokeToolInvalidJSON(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "POST", "/mcp/tools/greet", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandler_InvokeToolWrongMethod(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/tools/greet", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestHandler_ListResources(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/resources", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Resources map[string]ResourceInfo `json:"resources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Resources["motd"].Description != "Message of the day." {
		t.Errorf("unexpected resources: %+v", body.Resources)
	}
}

func TestHandler_InvokeResource(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/resources/motd", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Result != "stay focused" {
		t.Errorf("unexpected result: %q", body.Result)
	}
}

func TestHandler_InvokeUnknownResource(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/resources/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body detailEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.Detail != "Resource nope not found" {
		t.Errorf("unexpected detail: %q", body.Detail)
	}
}

func TestHandler_UnknownSubPath(t *testing.T) {
	h := newTestHandler()

	w := doRequest(t, h, "GET", "/mcp/bogus", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
