// Package clicontext provides global CLI context and state management.
package clicontext

import "sync"

// Global holds the global CLI context, including flags that affect all commands.
type Global struct {
	// ConfigPath is the group-parameter configuration file. Empty selects the
	// built-in catalog.
	ConfigPath string
}

var (
	globalContext = &Global{}
	mu            sync.RWMutex
)

// Set updates the global CLI context.
func Set(ctx *Global) {
	mu.Lock()
	defer mu.Unlock()
	globalContext = ctx
}

// Get returns a copy of the current global CLI context.
func Get() Global {
	mu.RLock()
	defer mu.RUnlock()
	return *globalContext
}

// ConfigPath returns the configuration file set by --config.
func ConfigPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalContext.ConfigPath
}

// SetConfigPath sets the configuration file path.
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	globalContext.ConfigPath = path
}
