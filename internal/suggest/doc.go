// Package suggest implements autocomplete providers for form fields.
//
// A field's "dataconnection" setting is a connection string of the form
// "<scheme>:<payload>". The scheme picks the provider:
//
//	v:anna|anton|astrid        literal values, pipe-delimited
//	f:cities.txt               values loaded from a source, one per line
//	f:redis:cities             values loaded from a Redis list, set or string
//	e:http://es:9200/idx|a,b   phrase-prefix search over fields a and b
//
// Providers return candidates that start with the typed prefix, compared
// case-insensitively, without duplicates. A provider asked about a scheme
// it does not own returns an empty result. Proxy dispatches a connection to
// the first provider that owns it.
package suggest
