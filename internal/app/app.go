package app

import (
	"github.com/tasklab/todo-portal/internal/common"
	"github.com/tasklab/todo-portal/internal/config"
	"github.com/tasklab/todo-portal/internal/handlers"
	"github.com/tasklab/todo-portal/internal/mcp"
	"github.com/tasklab/todo-portal/internal/registry"
	"github.com/tasklab/todo-portal/internal/store"
	"github.com/tasklab/todo-portal/internal/todo"
	"github.com/tasklab/todo-portal/internal/tools"
)

// App holds all application components and dependencies.
type App struct {
	Config   *config.Config
	Logger   *common.Logger
	Store    store.TaskStore
	Service  *todo.Service
	Registry *registry.Registry

	// HTTP handlers
	WelcomeHandler    *handlers.WelcomeHandler
	HealthHandler     *handlers.HealthHandler
	VersionHandler    *handlers.VersionHandler
	TodoHandler       *handlers.TodoHandler
	DispatcherHandler *registry.Handler
	MCPHandler        *mcp.Handler
}

// New initializes the application with all dependencies. The task store is
// injected into both front ends so REST and dispatcher calls share one
// id counter and one record collection.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	st, err := store.NewTaskStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	svc := todo.NewService(st, logger)

	reg := registry.New(cfg.Dispatcher.Name, cfg.Dispatcher.Description)
	tools.RegisterAll(reg, svc)

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Store:    st,
		Service:  svc,
		Registry: reg,
	}

	a.initHandlers()

	logger.Info().
		Str("backend", cfg.Storage.Backend).
		Int("tools", len(reg.ToolNames())).
		Int("resources", len(reg.ResourceNames())).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.WelcomeHandler = handlers.NewWelcomeHandler(a.Logger)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.TodoHandler = handlers.NewTodoHandler(a.Service, a.Logger)
	a.DispatcherHandler = registry.NewHandler(a.Registry, "/mcp", a.Logger)
	a.MCPHandler = mcp.NewHandler(a.Config, a.Registry, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return a.Store.Close()
}
