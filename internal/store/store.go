// Package store provides the task item store: an ordered collection of
// task records plus a monotonically increasing identifier counter.
package store

import (
	"errors"
	"fmt"

	"github.com/tasklab/todo-portal/internal/models"
)

// TaskStore is the storage contract shared by both front ends.
// Implementations must preserve insertion order in ListAll and must never
// reuse an identifier, even after deletes.
type TaskStore interface {
	// Append assigns the next identifier to the record, increments the
	// counter, and appends the record to the tail of the collection.
	Append(t models.Task) (models.Task, error)

	// ListAll returns a snapshot of all records in insertion order.
	ListAll() ([]models.Task, error)

	// Find returns the record matching id, or NotFoundError.
	Find(id int) (models.Task, error)

	// Replace substitutes the record matching id with t, preserving its
	// position in the collection. Returns NotFoundError if id is absent.
	Replace(id int, t models.Task) error

	// Remove deletes the record matching id and returns the removed value,
	// or NotFoundError if id is absent.
	Remove(id int) (models.Task, error)

	// Close releases any resources held by the store.
	Close() error
}

// NotFoundError indicates that no task with the given identifier exists.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %d not found", e.ID)
}

// IsNotFound reports whether err is a task NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
