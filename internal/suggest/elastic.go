package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// SearchPath is the endpoint below the base address that ElasticProvider
// posts to.
const SearchPath = "_search"

// connectionParts is what ElasticProvider derives from one connection string.
type connectionParts struct {
	base   *url.URL
	fields []string
}

// ElasticProvider serves "e:<baseUrl>|<field1>,<field2>,..." connections with
// a phrase-prefix multi_match search.
//
// The parsed base address and field list are cached per connection string
// for the lifetime of the provider. Concurrent first calls may both parse;
// the first stored entry wins and all callers use it.
type ElasticProvider struct {
	client RestClient
	log    *slog.Logger

	mu     sync.RWMutex
	parsed map[string]*connectionParts
	parses atomic.Int64
}

// ElasticOption customizes an ElasticProvider.
type ElasticOption func(*ElasticProvider)

// WithElasticLogger sets the provider's logger.
func WithElasticLogger(l *slog.Logger) ElasticOption {
	return func(p *ElasticProvider) {
		if l != nil {
			p.log = l
		}
	}
}

// NewElasticProvider returns a provider that searches through client.
// Returns ErrNilClient if client is nil.
func NewElasticProvider(client RestClient, opts ...ElasticOption) (*ElasticProvider, error) {
	if client == nil {
		return nil, types.ErrNilClient
	}
	p := &ElasticProvider{
		client: client,
		log:    slog.New(slog.DiscardHandler),
		parsed: make(map[string]*connectionParts),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CanHandle implements types.Provider.
func (p *ElasticProvider) CanHandle(connection string) bool {
	scheme, _, ok := types.ConnectionScheme(connection)
	return ok && scheme == types.SchemeElastic
}

// For implements types.Provider. Transport failures and malformed responses
// are returned to the caller.
func (p *ElasticProvider) For(ctx context.Context, prefix, connection string) ([]string, error) {
	if !p.CanHandle(connection) {
		return []string{}, nil
	}
	parts, err := p.parts(connection)
	if err != nil {
		return nil, err
	}

	raw, err := p.client.Post(ctx, parts.base, SearchPath, newSearchRequest(prefix, parts.fields))
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", parts.base.Redacted(), err)
	}
	values, err := hitFieldValues(raw, parts.fields)
	if err != nil {
		return nil, err
	}
	return matching(values, prefix), nil
}

// ParseCount returns how many times a connection string has been parsed.
func (p *ElasticProvider) ParseCount() int64 {
	return p.parses.Load()
}

func (p *ElasticProvider) parts(connection string) (*connectionParts, error) {
	p.mu.RLock()
	cached, ok := p.parsed[connection]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	parsed, err := p.parseConnection(connection)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.parsed[connection]; ok {
		return existing, nil
	}
	p.parsed[connection] = parsed
	p.log.Debug("search connection cached", "base", parsed.base.Redacted(), "fields", parsed.fields)
	return parsed, nil
}

func (p *ElasticProvider) parseConnection(connection string) (*connectionParts, error) {
	p.parses.Add(1)

	_, payload, _ := types.ConnectionScheme(connection)
	baseRaw, fieldsRaw, ok := strings.Cut(payload, "|")
	if !ok {
		return nil, fmt.Errorf("%w: %q has no field list", types.ErrInvalidConnection, connection)
	}

	base, err := url.Parse(strings.TrimSpace(baseRaw))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q has no absolute base address", types.ErrInvalidConnection, connection)
	}

	var fields []string
	for _, f := range strings.Split(fieldsRaw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q has no fields", types.ErrInvalidConnection, connection)
	}
	return &connectionParts{base: base, fields: fields}, nil
}

type searchRequest struct {
	Fields []string    `json:"fields"`
	Query  searchQuery `json:"query"`
}

type searchQuery struct {
	MultiMatch multiMatch `json:"multi_match"`
}

type multiMatch struct {
	Fields []string `json:"fields"`
	Type   string   `json:"type"`
	Query  string   `json:"query"`
}

func newSearchRequest(prefix string, fields []string) searchRequest {
	return searchRequest{
		Fields: fields,
		Query: searchQuery{MultiMatch: multiMatch{
			Fields: fields,
			Type:   "phrase_prefix",
			Query:  prefix,
		}},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Fields map[string]json.RawMessage `json:"fields"`
		} `json:"hits"`
	} `json:"hits"`
}

// hitFieldValues flattens the string values of every hit's fields. Within a
// hit, requested fields come first in request order, then any others by
// name. Values that are not arrays of strings are skipped.
func hitFieldValues(raw json.RawMessage, requested []string) ([]string, error) {
	var resp searchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %v", types.ErrBackendStatus, err)
	}

	rank := make(map[string]int, len(requested))
	for i, f := range requested {
		rank[f] = i
	}

	var values []string
	for _, hit := range resp.Hits.Hits {
		for _, name := range orderedFieldNames(hit.Fields, rank) {
			var items []json.RawMessage
			if err := json.Unmarshal(hit.Fields[name], &items); err != nil {
				continue
			}
			for _, item := range items {
				var s string
				if err := json.Unmarshal(item, &s); err == nil {
					values = append(values, s)
				}
			}
		}
	}
	return values, nil
}

func orderedFieldNames(fields map[string]json.RawMessage, rank map[string]int) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := rank[names[i]]
		rj, jok := rank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}
