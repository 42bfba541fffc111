package cache

import (
	"errors"
	"fmt"
)

var errUnknownCollection = errors.New("unknown collection")

// ReadError is a hard cache read failure: missing file, malformed JSON, or
// an envelope failing structural validation. It names the collection so
// operator diagnostics can point at the broken file. Item-level validation
// failures never produce one; those are filtered and counted instead.
type ReadError struct {
	Collection Collection
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cache: read %s: %v", e.Collection, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// AsReadError attempts to unwrap an error into a ReadError.
func AsReadError(err error) (*ReadError, bool) {
	var readErr *ReadError
	if errors.As(err, &readErr) {
		return readErr, true
	}
	return nil, false
}
