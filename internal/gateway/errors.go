package gateway

import (
	"errors"

	"plan2read/internal/api"
)

// ErrNotFound matches a RemoteError whose target row was missing.
var ErrNotFound = errors.New("not found")

// TransportError means the backend could not be reached or answered with
// something that is not a valid envelope.
type TransportError struct {
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	return "gateway " + e.Action + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is a {status:"error"} envelope. Message is the backend's
// text, unchanged.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Message == api.MsgNotFound
}
