// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/zim/internal/logger"
)

// Manager handles the registration and lifecycle of plugins. Plugins are
// initialised in registration order and shut down in reverse.
type Manager struct {
	mu      sync.RWMutex
	plugins []Plugin
	byName  map[string]Plugin
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]Plugin)}
}

// Register adds a plugin. It must be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins = append(m.plugins, plugin)
	m.byName[name] = plugin
	logger.DebugTagf("plugin", "Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every plugin. A failing plugin is
// logged and the rest still initialise.
func (m *Manager) InitializePlugins(api EditorAPI) {
	for _, plugin := range m.snapshot() {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			continue
		}
		logger.Infof("Plugin Manager: Initialized plugin '%s'", plugin.Name())
	}
}

// ShutdownPlugins calls Shutdown on all registered plugins.
func (m *Manager) ShutdownPlugins() {
	plugins := m.snapshot()
	for i := len(plugins) - 1; i >= 0; i-- {
		if err := plugins[i].Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugins[i].Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.byName[name]
	return p, exists
}

// Names lists the plugins in registration order.
func (m *Manager) Names() []string {
	plugins := m.snapshot()
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name()
	}
	return names
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// Commands holds the ":" commands registered by plugins.
type Commands struct {
	mu   sync.RWMutex
	cmds map[string]CommandFunc
}

func NewCommands() *Commands {
	return &Commands{cmds: make(map[string]CommandFunc)}
}

// Register adds a command. Names are unique.
func (c *Commands) Register(name string, fn CommandFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("command registration failed: empty name or nil function")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.cmds[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	c.cmds[name] = fn
	logger.DebugTagf("plugin", "Registered command ':%s'", name)
	return nil
}

// Lookup is nil-safe.
func (c *Commands) Lookup(name string) (CommandFunc, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.cmds[name]
	return fn, ok
}

// Names returns the registered command names, sorted.
func (c *Commands) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.cmds))
	for name := range c.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
