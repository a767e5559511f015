package store

import "errors"

// Storage errors. Persisters wrap ErrIO, ErrDecode and ErrEncode so callers
// can tell a missing file from a corrupt one with errors.Is.
var (
	// ErrCounterExhausted is returned by Add once every identifier has been issued.
	ErrCounterExhausted = errors.New("store: no identifiers left")

	// ErrNotFound is returned by Update when the target todo does not exist.
	ErrNotFound = errors.New("store: todo not found")

	// ErrIO covers open, read and write failures of the backing file.
	ErrIO = errors.New("store: io error")

	// ErrDecode is returned when persisted content is not a well-formed todo list.
	ErrDecode = errors.New("store: malformed content")

	// ErrEncode is returned when the todo list cannot be serialized.
	ErrEncode = errors.New("store: cannot serialize")
)
