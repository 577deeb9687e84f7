// Package tools registers the todo operations with the dispatcher registry.
// Each registration supplies the parameter descriptors the dispatcher
// reports through introspection, alongside the operation itself.
package tools

import (
	"encoding/json"

	"github.com/tasklab/todo-portal/internal/models"
	"github.com/tasklab/todo-portal/internal/registry"
	"github.com/tasklab/todo-portal/internal/todo"
)

// RegisterAll registers every todo tool and resource with reg.
// Called once at startup.
func RegisterAll(reg *registry.Registry, svc *todo.Service) {
	reg.RegisterTool("create_todo", "Create a new todo item.", []registry.Param{
		{Name: "title", Type: "string", Required: true},
		{Name: "description", Type: "string"},
	}, createTodo(svc))

	reg.RegisterTool("list_todos", "Get all todo items.", nil, listTodos(svc))

	reg.RegisterTool("get_todo", "Get a single todo item by ID.", []registry.Param{
		{Name: "id", Type: "number", Required: true},
	}, getTodo(svc))

	reg.RegisterTool("update_todo", "Update a todo item by ID.", []registry.Param{
		{Name: "id", Type: "number", Required: true},
		{Name: "title", Type: "string"},
		{Name: "description", Type: "string"},
		{Name: "completed", Type: "boolean"},
	}, updateTodo(svc))

	reg.RegisterTool("delete_todo", "Delete a todo item by ID.", []registry.Param{
		{Name: "id", Type: "number", Required: true},
	}, deleteTodo(svc))

	reg.RegisterResource("todo_summary", "Get a summary of all todos including counts.", todoSummary(svc))
}

func createTodo(svc *todo.Service) registry.ToolFunc {
	return func(args map[string]any) (any, error) {
		title, err := requireString(args, "title")
		if err != nil {
			return nil, err
		}
		description, err := optionalString(args, "description")
		if err != nil {
			return nil, err
		}

		task, err := svc.Create(title, description)
		if err != nil {
			return nil, err
		}
		return task, nil
	}
}

func listTodos(svc *todo.Service) registry.ToolFunc {
	return func(args map[string]any) (any, error) {
		tasks, err := svc.List()
		if err != nil {
			return nil, err
		}
		return tasks, nil
	}
}

func getTodo(svc *todo.Service) registry.ToolFunc {
	return func(args map[string]any) (any, error) {
		id, err := requireInt(args, "id")
		if err != nil {
			return nil, err
		}

		task, err := svc.Get(id)
		if err != nil {
			return nil, err
		}
		return task, nil
	}
}

func updateTodo(svc *todo.Service) registry.ToolFunc {
	return func(args map[string]any) (any, error) {
		id, err := requireInt(args, "id")
		if err != nil {
			return nil, err
		}

		// A null argument counts as absent here, unlike the REST body.
		var upd models.TaskUpdate
		title, err := optionalString(args, "title")
		if err != nil {
			return nil, err
		}
		if title != nil {
			upd.SetTitle(*title)
		}
		description, err := optionalString(args, "description")
		if err != nil {
			return nil, err
		}
		if description != nil {
			upd.SetDescription(description)
		}
		completed, err := optionalBool(args, "completed")
		if err != nil {
			return nil, err
		}
		if completed != nil {
			upd.SetCompleted(*completed)
		}

		task, err := svc.Update(id, upd)
		if err != nil {
			return nil, err
		}
		return task, nil
	}
}

func deleteTodo(svc *todo.Service) registry.ToolFunc {
	return func(args map[string]any) (any, error) {
		id, err := requireInt(args, "id")
		if err != nil {
			return nil, err
		}

		conf, err := svc.Delete(id)
		if err != nil {
			return nil, err
		}
		return conf, nil
	}
}

// todoSummary returns the summary statistics JSON-encoded as a string,
// matching the original resource contract.
func todoSummary(svc *todo.Service) registry.ResourceFunc {
	return func() (any, error) {
		summary, err := svc.Summary()
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
}
