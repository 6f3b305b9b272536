package repository

import "errors"

// ErrNotFound is returned by every implementation when a record does not
// exist, so callers never depend on driver-specific errors.
var ErrNotFound = errors.New("record not found")
