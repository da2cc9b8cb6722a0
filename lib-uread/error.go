package uread

import (
	"errors"
)

var (
	// ErrClosed is returned by operations on a Stream that is already closed.
	ErrClosed = errors.New("stream is already closed")

	// ErrNotSupported is returned by operations that a read-only,
	// forward-only Stream can not do, like writing or seeking.
	ErrNotSupported = errors.New("operation is not supported")
)
