package types

import "context"

// Connection scheme tags. A connection string is "<scheme>:<payload>".
const (
	SchemeFile    = "f"
	SchemeValues  = "v"
	SchemeElastic = "e"
)

// Provider returns autocomplete candidates for a field.
//
// CanHandle reports whether the provider owns the connection string's scheme.
// For returns the candidates starting with prefix, compared
// case-insensitively and deduplicated. A provider asked about a connection it
// does not own returns an empty result and no error. For may block on I/O;
// callers bound it with ctx.
type Provider interface {
	CanHandle(connection string) bool
	For(ctx context.Context, prefix, connection string) ([]string, error)
}

// ConnectionScheme returns the scheme tag and payload of a connection string.
// ok is false when the string has no single-character scheme.
func ConnectionScheme(connection string) (scheme, payload string, ok bool) {
	if len(connection) < 2 || connection[1] != ':' {
		return "", "", false
	}
	return connection[:1], connection[2:], true
}
