package store

import (
	"sync"

	"github.com/tasklab/todo-portal/internal/models"
)

// MemoryStore is the default in-memory task store: an ordered slice plus a
// next-id counter. A mutex guards all access since net/http dispatches
// requests on concurrent goroutines.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  []models.Task
	nextID int
}

// NewMemoryStore creates an empty in-memory store. The first assigned
// identifier is 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Append assigns the next identifier and appends the record to the tail.
func (s *MemoryStore) Append(t models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextID
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t, nil
}

// ListAll returns a snapshot of all records in insertion order.
func (s *MemoryStore) ListAll() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Find returns the record matching id.
func (s *MemoryStore) Find(id int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, &NotFoundError{ID: id}
}

// Replace substitutes the record matching id in place, preserving order.
func (s *MemoryStore) Replace(id int, t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t.ID = id
			s.tasks[i] = t
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// Remove deletes the record matching id and returns the removed value.
// The id counter is not decremented; identifiers are never reused.
func (s *MemoryStore) Remove(id int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return t, nil
		}
	}
	return models.Task{}, &NotFoundError{ID: id}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
