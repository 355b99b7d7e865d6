package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bhandras/rfext/internal/response"
)

// HandlerFunc runs one command. A returned error is a handler fault unless it
// is classified otherwise (see apierr.From).
type HandlerFunc func(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error)

// Command binds a name to its handler.
type Command struct {
	Name string
	// Delegated marks commands that call back into the host; they need a
	// delegated token.
	Delegated bool
	// Kind is the variant the command answers with. The zero value accepts
	// any variant.
	Kind   response.Kind
	Handle HandlerFunc
}

// Registry maps command names to commands in a concurrency-safe way.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds cmd. Names must be unique.
func (r *Registry) Register(cmd Command) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("command name is required")
	}
	if cmd.Handle == nil {
		return fmt.Errorf("command %q has no handler", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[cmd.Name]; ok {
		return fmt.Errorf("command %q already registered", cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	return nil
}

func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckDeclared returns an error naming every declared action without a
// handler.
func (r *Registry) CheckDeclared(actions []string) error {
	var missing []string
	for _, name := range actions {
		if _, ok := r.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("declared commands without handler: %s", strings.Join(missing, ", "))
	}
	return nil
}
