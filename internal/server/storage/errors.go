package storage

import "errors"

// Common storage errors
var (
	// ErrDocumentNotFound indicates that document was not found in storage
	ErrDocumentNotFound = errors.New("document not found")

	// ErrSnapshotNotFound indicates that document has no valid snapshot
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrChecksumMismatch indicates that snapshot content does not match its checksum
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrInvalidOrder indicates that event order is not positive
	ErrInvalidOrder = errors.New("invalid event order")
)
