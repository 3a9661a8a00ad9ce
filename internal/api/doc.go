// Package api implements the JSON/HTTP transport used to talk to the
// banking platform.
//
// The package is intentionally thin: it owns connection pooling, bearer
// token injection, JSON encoding/decoding, and the translation of non-2xx
// responses into [*Error] values. Resource semantics (paths, payloads,
// state machines) live in the root sandbank package.
package api
