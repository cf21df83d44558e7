package store

import "errors"

// ErrNotFound is returned by LoadSBOM when no sbom row exists for the id
// (PgxStore wraps it with the missing id); callers match it with
// errors.Is. The other Load* methods return an empty result for an
// unknown id.
var ErrNotFound = errors.New("store: not found")
