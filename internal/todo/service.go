// Package todo implements the CRUD operation set shared by the REST
// surface and the tool dispatcher. Behavior is identical regardless of
// which front end invokes it.
package todo

import (
	"fmt"
	"time"

	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/models"
	"github.com/tasklab/todo-portal/internal/store"
)

// Service provides task operations over a TaskStore.
type Service struct {
	store  store.TaskStore
	logger *common.Logger
}

// NewService creates a new todo service.
func NewService(st store.TaskStore, logger *common.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Create constructs a new task with completed=false and the current time as
// creation timestamp, and appends it to the store.
func (s *Service) Create(title string, description *string) (models.Task, error) {
	task := models.Task{
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.store.Append(task)
	if err != nil {
		return models.Task{}, err
	}

	s.logger.Debug().Int("id", created.ID).Str("title", created.Title).Msg("task created")
	return created, nil
}

// List returns all tasks in creation order.
func (s *Service) List() ([]models.Task, error) {
	return s.store.ListAll()
}

// Get returns the task matching id, or a NotFoundError.
func (s *Service) Get(id int) (models.Task, error) {
	return s.store.Find(id)
}

// Update overwrites only the fields supplied in upd; absent fields retain
// their prior values. A supplied null description clears it. Null title or
// completed values are ignored since those fields cannot be cleared. The
// creation timestamp is immutable.
func (s *Service) Update(id int, upd models.TaskUpdate) (models.Task, error) {
	existing, err := s.store.Find(id)
	if err != nil {
		return models.Task{}, err
	}

	if upd.HasTitle() && upd.Title != nil {
		existing.Title = *upd.Title
	}
	if upd.HasDescription() {
		existing.Description = upd.Description
	}
	if upd.HasCompleted() && upd.Completed != nil {
		existing.Completed = *upd.Completed
	}

	if err := s.store.Replace(id, existing); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug().Int("id", id).Msg("task updated")
	return existing, nil
}

// Delete removes the task matching id and returns a confirmation naming the
// deleted task's title.
func (s *Service) Delete(id int) (models.DeleteConfirmation, error) {
	removed, err := s.store.Remove(id)
	if err != nil {
		return models.DeleteConfirmation{}, err
	}

	s.logger.Debug().Int("id", id).Str("title", removed.Title).Msg("task deleted")
	return models.DeleteConfirmation{
		Message: fmt.Sprintf("Todo '%s' deleted successfully", removed.Title),
	}, nil
}

// Summary aggregates completion statistics over all tasks. The completion
// rate is 0 when there are no tasks, otherwise a percentage in (0, 100].
func (s *Service) Summary() (models.Summary, error) {
	tasks, err := s.store.ListAll()
	if err != nil {
		return models.Summary{}, err
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	summary := models.Summary{
		TotalTodos:     len(tasks),
		CompletedTodos: completed,
		PendingTodos:   len(tasks) - completed,
	}
	if summary.TotalTodos > 0 {
		summary.CompletionRate = float64(completed) / float64(summary.TotalTodos) * 100
	}
	return summary, nil
}
