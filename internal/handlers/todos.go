package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/models"
	"github.com/tasklab/todo-portal/internal/store"
	"github.com/tasklab/todo-portal/internal/todo"
)

// TodoHandler serves the REST surface over the todo service.
type TodoHandler struct {
	service *todo.Service
	logger  *common.Logger
}

// NewTodoHandler creates a new todo REST handler.
func NewTodoHandler(service *todo.Service, logger *common.Logger) *TodoHandler {
	return &TodoHandler{service: service, logger: logger}
}

// Create handles POST /todos/.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		WriteDetail(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.service.Create(body.Title, body.Description)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

// List handles GET /todos/.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tasks)
}

// Get handles GET /todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.service.Get(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

// Update handles PUT /todos/{id}. Only fields present in the body overwrite
// the stored record.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var body models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	task, err := h.service.Update(id, body)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid task id")
		return
	}

	conf, err := h.service.Delete(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, conf)
}

// writeServiceError maps service errors to HTTP: NotFound becomes 404,
// anything else 500.
func (h *TodoHandler) writeServiceError(w http.ResponseWriter, err error) {
	if store.IsNotFound(err) {
		WriteDetail(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.Error().Str("error", err.Error()).Msg("todo operation failed")
	WriteDetail(w, http.StatusInternalServerError, err.Error())
}
