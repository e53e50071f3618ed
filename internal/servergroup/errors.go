package servergroup

import "errors"

// ErrNotFound is returned when a requested group has no hash in the cache.
var ErrNotFound = errors.New("servergroup: not found")

// ErrParsing is returned when a cached hash is present but malformed —
// a missing required key, an unparseable number, or an invariant violation
// (parsed prefix != name).
var ErrParsing = errors.New("servergroup: parsing error")

// ErrStorage wraps a cache transport failure.
var ErrStorage = errors.New("servergroup: storage error")
