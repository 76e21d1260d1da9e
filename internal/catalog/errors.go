package catalog

import "errors"

// ErrNotFound reports a scan ID with no catalog entry.
var ErrNotFound = errors.New("catalog: scan not found")

// ErrLocked reports that another process holds the catalog write lock.
var ErrLocked = errors.New("catalog: locked by another process")
