package core

import "errors"

var (
	// ErrTransport marks failures reaching the model provider or the review backend.
	ErrTransport = errors.New("transport failure")
	// ErrEmptyResponse is returned when the provider answered without any text.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// IsTransportFailure reports whether err should be surfaced to the user as a
// failed request rather than as review content.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrEmptyResponse)
}
