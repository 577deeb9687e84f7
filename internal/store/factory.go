package store

import (
	"fmt"
	"strings"

	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/config"
)

// NewTaskStore creates a task store based on config.
func NewTaskStore(cfg *config.Config, logger *common.Logger) (TaskStore, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "bolt":
		return NewBoltStore(cfg.Storage.Bolt.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
