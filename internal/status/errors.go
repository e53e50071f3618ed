package status

import "errors"

// ErrParsing is returned when a status JSON blob is missing a required key
// or has a key of the wrong JSON type.
var ErrParsing = errors.New("status: parsing error")

// ErrNotFound is returned when the status key itself does not exist.
var ErrNotFound = errors.New("status: not found")

// ErrStorage wraps a cache transport failure.
var ErrStorage = errors.New("status: storage error")
