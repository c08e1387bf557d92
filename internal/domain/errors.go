package domain

import "errors"

// ErrConflict is returned when a generated sale ID collides with an existing
// record. With random UUIDs this is pathologically unlikely, but the store
// reports it and we surface it.
var ErrConflict = errors.New("sale with this ID already exists")

// ErrStoreUnavailable is returned by store operations that cannot proceed
// without a live database connection.
var ErrStoreUnavailable = errors.New("sales store is not available")
