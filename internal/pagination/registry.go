package pagination

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ErrInvalidRegistration is returned when a strategy or counter cannot be
// registered.
var ErrInvalidRegistration = errors.New("invalid registration")

// StrategyRegistry maps strategy names to their factories. It is populated
// at startup and read concurrently afterwards.
type StrategyRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

// NewStrategyRegistry creates an empty registry.
// If logger is nil, a default logger will be used.
func NewStrategyRegistry(logger *slog.Logger) *StrategyRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &StrategyRegistry{
		factories: make(map[string]Factory),
		logger:    logger.With(slog.String("component", "pagination_strategies")),
	}
}

// DefaultStrategies returns a registry holding the paged and offset
// strategies.
func DefaultStrategies(logger *slog.Logger) *StrategyRegistry {
	r := NewStrategyRegistry(logger)
	r.MustRegister(Paged, NewPagedStrategy)
	r.MustRegister(Offset, NewOffsetStrategy)
	return r
}

// Register adds a strategy under name. Empty names, the reserved name none,
// nil factories and duplicate names are rejected.
func (r *StrategyRegistry) Register(name string, f Factory) error {
	if name == "" || name == None || f == nil {
		r.logger.Warn("rejected pagination strategy", slog.String("name", name))
		return fmt.Errorf("strategy %q: %w", name, ErrInvalidRegistration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[name]; dup {
		r.logger.Warn("duplicate pagination strategy", slog.String("name", name))
		return fmt.Errorf("strategy %q already registered: %w", name, ErrInvalidRegistration)
	}
	r.factories[name] = f
	r.logger.Info("registered pagination strategy", slog.String("name", name))
	return nil
}

// MustRegister is like Register but panics on failure.
func (r *StrategyRegistry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *StrategyRegistry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names lists the registered strategy names in sorted order.
func (r *StrategyRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
