package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8000,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Backend: "memory",
			Bolt: BoltConfig{
				Path: "./data/todo.db",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
		Dispatcher: DispatcherConfig{
			Name:        "todo-mcp-server",
			Description: "MCP server for managing To-Do tasks",
		},
	}
}
