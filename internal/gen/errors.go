package gen

import "errors"

var (
	// ErrNoUsableContent means the backend answered with a well-formed but
	// empty or entirely invalid item set.
	ErrNoUsableContent = errors.New("generation produced no usable content")

	// ErrMalformedResponse means the backend payload could not be parsed in
	// any supported encoding.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrBackendUnavailable means the request never produced a payload
	// (network, quota, service failure).
	ErrBackendUnavailable = errors.New("generation backend unavailable")
)
