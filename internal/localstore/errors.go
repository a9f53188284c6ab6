package localstore

import "fmt"

// DecodeError reports a persisted snapshot that could not be decoded.
// Stores treat it as non-fatal and fall back to an empty state, but
// expose it so callers can surface a warning instead.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
