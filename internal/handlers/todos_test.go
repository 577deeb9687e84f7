package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/models"
	"github.com/tasklab/todo-portal/internal/store"
	"github.com/tasklab/todo-portal/internal/todo"
)

func newTestHandler(t *testing.T) *TodoHandler {
	t.Helper()
	logger := common.NewSilentLogger()
	svc := todo.NewService(store.NewMemoryStore(), logger)
	return NewTodoHandler(svc, logger)
}

func seedTask(t *testing.T, h *TodoHandler, title string) models.Task {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/todos/", strings.NewReader(`{"title":"`+title+`"}`))
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d %s", w.Code, w.Body.String())
	}
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	return task
}

func TestTodoHandler_Create(t *testing.T) {
	h := newTestHandler(t)

	body := `{"title":"write report","description":"quarterly numbers"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/todos/", strings.NewReader(body))
	h.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("expected id 1, got %d", task.ID)
	}
	if task.Title != "write report" {
		t.Errorf("unexpected title %q", task.Title)
	}
	if task.Description == nil || *task.Description != "quarterly numbers" {
		t.Errorf("unexpected description %v", task.Description)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestTodoHandler_CreateRejectsBlankTitle(t *testing.T) {
	h := newTestHandler(t)

	for _, body := range []string{`{}`, `{"title":""}`, `{"title":"   "}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/todos/", strings.NewReader(body))
		h.Create(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestTodoHandler_CreateRejectsInvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/todos/", strings.NewReader(`{not json`))
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "detail") {
		t.Errorf("expected detail envelope, got %s", w.Body.String())
	}
}

func TestTodoHandler_List(t *testing.T) {
	h := newTestHandler(t)
	seedTask(t, h, "first")
	seedTask(t, h, "second")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos/", nil)
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var tasks []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "first" || tasks[1].Title != "second" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestTodoHandler_ListEmpty(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos/", nil)
	h.List(w, req)

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %s", w.Body.String())
	}
}

func TestTodoHandler_Get(t *testing.T) {
	h := newTestHandler(t)
	created := seedTask(t, h, "read book")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos/1", nil)
	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if task.ID != created.ID || task.Title != created.Title {
		t.Errorf("expected %+v, got %+v", created, task)
	}
}

func TestTodoHandler_GetUnknownID(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos/42", nil)
	h.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task with ID 42 not found") {
		t.Errorf("unexpected detail: %s", w.Body.String())
	}
}

func TestTodoHandler_GetInvalidID(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/todos/abc", nil)
	h.Get(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTodoHandler_Update(t *testing.T) {
	h := newTestHandler(t)
	seedTask(t, h, "old title")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/todos/1", strings.NewReader(`{"title":"new title","completed":true}`))
	h.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if task.Title != "new title" || !task.Completed {
		t.Errorf("unexpected task after update: %+v", task)
	}
}

func TestTodoHandler_UpdatePartialKeepsOtherFields(t *testing.T) {
	h := newTestHandler(t)
	seedTask(t, h, "keep me")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/todos/1", strings.NewReader(`{"completed":true}`))
	h.Update(w, req)

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if task.Title != "keep me" {
		t.Errorf("title changed unexpectedly: %q", task.Title)
	}
	if !task.Completed {
		t.Error("expected completed to be set")
	}
}

func TestTodoHandler_UpdateNullClearsDescription(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/todos/", strings.NewReader(`{"title":"buy milk","description":"two liters"}`))
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d %s", w.Code, w.Body.String())
	}

	// An explicit null is a provided value and clears the description;
	// leaving the key out entirely retains it.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("PUT", "/todos/1", strings.NewReader(`{"description":null}`))
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if task.Description != nil {
		t.Errorf("explicit null did not clear description; still %q", *task.Description)
	}
	if task.Title != "buy milk" {
		t.Errorf("title changed: %q", task.Title)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("PUT", "/todos/1", strings.NewReader(`{"completed":true}`))
	h.Update(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if task.Description != nil {
		t.Errorf("absent description overwrote the stored value: %v", task.Description)
	}
}

func TestTodoHandler_UpdateUnknownID(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/todos/9", strings.NewReader(`{"completed":true}`))
	h.Update(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	h := newTestHandler(t)
	seedTask(t, h, "remove me")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/todos/1", nil)
	h.Delete(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var conf models.DeleteConfirmation
	if err := json.Unmarshal(w.Body.Bytes(), &conf); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if conf.Message != "Todo 'remove me' deleted successfully" {
		t.Errorf("unexpected confirmation: %q", conf.Message)
	}

	// The task is gone afterwards.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/todos/1", nil)
	h.Get(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(common.NewSilentLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "healthy" || body["message"] != "API is running" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestVersionHandler(t *testing.T) {
	h := NewVersionHandler(common.NewSilentLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/version", nil)
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["version"] == "" {
		t.Error("expected version field")
	}
}

func TestWelcomeHandler(t *testing.T) {
	h := NewWelcomeHandler(common.NewSilentLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Welcome to the To-Do API") {
		t.Errorf("unexpected welcome body: %s", w.Body.String())
	}

	// Unmatched paths land here and produce a JSON 404.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/nope", nil)
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", w.Code)
	}
}

func TestPathID(t *testing.T) {
	cases := []struct {
		path    string
		want    int
		wantErr bool
	}{
		{"/todos/7", 7, false},
		{"/todos/7/", 7, false},
		{"/todos/abc", 0, true},
		{"/todos/", 0, true},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", tc.path, nil)
		got, err := PathID(req)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.path, tc.want, got)
		}
	}
}
