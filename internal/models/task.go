package models

import (
	"encoding/json"
	"time"
)

// Task represents a single to-do entry.
// Description is a pointer so an unset description serializes as null,
// matching the wire shape expected by API clients.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskCreate is the request body for creating a task.
type TaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// TaskUpdate is the request body for updating a task. Every field is
// optional, and presence is tracked per field so an explicit JSON null is
// distinguishable from an absent field: only fields the caller actually
// provided overwrite the stored value, and a provided null clears the
// description.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool

	titleSet       bool
	descriptionSet bool
	completedSet   bool
}

// SetTitle marks the title as provided.
func (u *TaskUpdate) SetTitle(title string) {
	u.Title = &title
	u.titleSet = true
}

// SetDescription marks the description as provided; a nil value clears it.
func (u *TaskUpdate) SetDescription(description *string) {
	u.Description = description
	u.descriptionSet = true
}

// SetCompleted marks the completion flag as provided.
func (u *TaskUpdate) SetCompleted(completed bool) {
	u.Completed = &completed
	u.completedSet = true
}

// HasTitle reports whether the caller provided a title.
func (u *TaskUpdate) HasTitle() bool { return u.titleSet }

// HasDescription reports whether the caller provided a description,
// including an explicit null.
func (u *TaskUpdate) HasDescription() bool { return u.descriptionSet }

// HasCompleted reports whether the caller provided a completion flag.
func (u *TaskUpdate) HasCompleted() bool { return u.completedSet }

// UnmarshalJSON decodes the update body keeping track of which keys were
// present, so null and absent are not conflated.
func (u *TaskUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["title"]; ok {
		if err := json.Unmarshal(v, &u.Title); err != nil {
			return err
		}
		u.titleSet = true
	}
	if v, ok := raw["description"]; ok {
		if err := json.Unmarshal(v, &u.Description); err != nil {
			return err
		}
		u.descriptionSet = true
	}
	if v, ok := raw["completed"]; ok {
		if err := json.Unmarshal(v, &u.Completed); err != nil {
			return err
		}
		u.completedSet = true
	}
	return nil
}

// Summary aggregates completion statistics over all tasks.
// CompletionRate is a percentage in [0, 100]; 0 when there are no tasks.
type Summary struct {
	TotalTodos     int     `json:"total_todos"`
	CompletedTodos int     `json:"completed_todos"`
	PendingTodos   int     `json:"pending_todos"`
	CompletionRate float64 `json:"completion_rate"`
}

// DeleteConfirmation is returned after a successful delete.
type DeleteConfirmation struct {
	Message string `json:"message"`
}
