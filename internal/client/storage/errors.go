package storage

import "errors"

// Common client storage errors
var (
	// ErrNoDocument indicates that no document was opened on this client yet
	ErrNoDocument = errors.New("no document opened yet")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
