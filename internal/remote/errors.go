package remote

import "fmt"

// TransportError wraps network failures, timeouts, unexpected HTTP status
// codes, and undecodable responses. Local state must stay untouched; the
// user may retry manually.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sync transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is an explicit failure reported by the remote store,
// carrying its message.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote store: %s", e.Message)
}
