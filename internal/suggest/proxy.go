package suggest

import (
	"context"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// Proxy dispatches a connection to the first provider that can handle it.
type Proxy struct {
	providers []types.Provider
}

// NewProxy returns a Proxy over providers, consulted in order. Nil providers
// are skipped.
func NewProxy(providers ...types.Provider) *Proxy {
	kept := make([]types.Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &Proxy{providers: kept}
}

// CanHandle implements types.Provider.
func (p *Proxy) CanHandle(connection string) bool {
	return p.provider(connection) != nil
}

// For implements types.Provider. A connection no provider owns yields no
// candidates.
func (p *Proxy) For(ctx context.Context, prefix, connection string) ([]string, error) {
	provider := p.provider(connection)
	if provider == nil {
		return []string{}, nil
	}
	return provider.For(ctx, prefix, connection)
}

func (p *Proxy) provider(connection string) types.Provider {
	for _, provider := range p.providers {
		if provider.CanHandle(connection) {
			return provider
		}
	}
	return nil
}
