package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// DefaultCacheSize bounds the number of loaded sources a ListProvider keeps.
const DefaultCacheSize = 128

// ListOption customizes a ListProvider.
type ListOption func(*listOptions)

type listOptions struct {
	loaders   []SourceLoader
	cacheSize int
	log       *slog.Logger
}

// WithLoaders sets the loaders consulted, in order, for "f:" locators.
func WithLoaders(loaders ...SourceLoader) ListOption {
	return func(o *listOptions) {
		o.loaders = loaders
	}
}

// WithCacheSize bounds the loaded-source cache.
func WithCacheSize(n int) ListOption {
	return func(o *listOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithListLogger sets the provider's logger.
func WithListLogger(l *slog.Logger) ListOption {
	return func(o *listOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// ListProvider serves "v:" literal lists and "f:" loaded lists.
type ListProvider struct {
	loaders []SourceLoader
	cache   *lru.Cache[string, []string]
	log     *slog.Logger
}

// NewListProvider builds a ListProvider. Without WithLoaders it reads files
// relative to the working directory.
func NewListProvider(opts ...ListOption) (*ListProvider, error) {
	o := listOptions{
		loaders:   []SourceLoader{FileLoader{}},
		cacheSize: DefaultCacheSize,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := lru.New[string, []string](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}
	return &ListProvider{loaders: o.loaders, cache: cache, log: o.log}, nil
}

// CanHandle implements types.Provider.
func (p *ListProvider) CanHandle(connection string) bool {
	scheme, _, ok := types.ConnectionScheme(connection)
	return ok && (scheme == types.SchemeValues || scheme == types.SchemeFile)
}

// For implements types.Provider. A blank prefix yields no candidates, as
// does a source that does not exist.
func (p *ListProvider) For(ctx context.Context, prefix, connection string) ([]string, error) {
	if !p.CanHandle(connection) || strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}
	scheme, payload, _ := types.ConnectionScheme(connection)

	if scheme == types.SchemeValues {
		return matching(strings.Split(payload, "|"), prefix), nil
	}

	candidates, err := p.load(ctx, connection, payload)
	if errors.Is(err, types.ErrSourceNotFound) {
		p.log.Debug("suggestion source not found", "connection", connection)
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return matching(candidates, prefix), nil
}

func (p *ListProvider) load(ctx context.Context, connection, locator string) ([]string, error) {
	if values, ok := p.cache.Get(connection); ok {
		return values, nil
	}
	for _, l := range p.loaders {
		if !l.Accepts(locator) {
			continue
		}
		values, err := l.Load(ctx, locator)
		if err != nil {
			return nil, err
		}
		p.cache.Add(connection, values)
		p.log.Debug("suggestion source loaded", "connection", connection, "count", len(values))
		return values, nil
	}
	return nil, fmt.Errorf("%w: no loader for %q", types.ErrInvalidConnection, locator)
}

// Forget drops the cached values of a connection so the next call reloads
// them.
func (p *ListProvider) Forget(connection string) {
	p.cache.Remove(connection)
}
