package behavior

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// Registration is one entry of the registry.
type Registration struct {
	Name    string
	Factory types.BehaviorFactory
}

// Option customizes an Extender.
type Option func(*Extender)

// WithLogger sets the logger used to report registry changes.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extender) {
		if l != nil {
			e.log = l
		}
	}
}

// Extender maps behavior names to factories. Registration replaces any
// previous entry of the same name. Mutations are serialized; lookups run
// concurrently with each other.
type Extender struct {
	mu      sync.RWMutex
	entries map[string]types.BehaviorFactory
	log     *slog.Logger
}

// NewExtender returns an Extender holding only the built-in Empty behavior.
func NewExtender(opts ...Option) *Extender {
	e := &Extender{
		entries: map[string]types.BehaviorFactory{
			types.BehaviorEmpty: newEmpty,
		},
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func newEmpty() types.Behavior { return types.EmptyBehavior{} }

var (
	defaultOnce     sync.Once
	defaultExtender *Extender
)

// Default returns the process-wide Extender, created on first use.
func Default() *Extender {
	defaultOnce.Do(func() {
		defaultExtender = NewExtender(WithLogger(slog.Default()))
	})
	return defaultExtender
}

// Register adds a behavior under name, or replaces the existing one.
// Returns ErrInvalidBehaviorName for an empty name and ErrNilBehaviorFactory
// for a nil factory.
func (e *Extender) Register(name string, factory types.BehaviorFactory) error {
	if name == "" {
		return types.ErrInvalidBehaviorName
	}
	if factory == nil {
		return fmt.Errorf("%w: %q", types.ErrNilBehaviorFactory, name)
	}

	e.mu.Lock()
	_, replaced := e.entries[name]
	e.entries[name] = factory
	e.mu.Unlock()

	if replaced {
		e.log.Info("behavior replaced", "name", name)
	} else {
		e.log.Debug("behavior registered", "name", name)
	}
	return nil
}

// Unregister removes the behavior registered under name. Removing a name that
// is not registered does nothing.
func (e *Extender) Unregister(name string) {
	e.mu.Lock()
	_, ok := e.entries[name]
	delete(e.entries, name)
	e.mu.Unlock()

	if !ok {
		e.log.Debug("unregister of unknown behavior ignored", "name", name)
		return
	}
	e.log.Debug("behavior unregistered", "name", name)
}

// Behaviors returns a copy of the current registrations ordered by name.
// Changing the returned slice does not affect the registry.
func (e *Extender) Behaviors() []Registration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Registration, 0, len(e.entries))
	for name, f := range e.entries {
		out = append(out, Registration{Name: name, Factory: f})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the factory registered under name.
func (e *Extender) Lookup(name string) (types.BehaviorFactory, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.entries[name]
	return f, ok
}

// Create instantiates the behavior registered under name.
// Returns ErrBehaviorNotFound if the name is not registered.
func (e *Extender) Create(name string) (types.Behavior, error) {
	f, ok := e.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrBehaviorNotFound, name)
	}
	return f(), nil
}

// Apply runs every behavior the field names, in order, against data.
// Names are resolved before any behavior runs, so an unknown name leaves
// data untouched.
func (e *Extender) Apply(field types.FieldDefinition, data *types.FormData) error {
	resolved := make([]types.Behavior, 0, len(field.Behaviors))
	for _, def := range field.Behaviors {
		b, err := e.Create(def.Name)
		if err != nil {
			return fmt.Errorf("field %q: %w", field.Key, err)
		}
		resolved = append(resolved, b)
	}
	for _, b := range resolved {
		b.Apply(field, data)
	}
	return nil
}
