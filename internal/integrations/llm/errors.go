package llm

import "errors"

var (
	// ErrUnavailable is returned when the model endpoint cannot be reached
	// or answers with a server error
	ErrUnavailable = errors.New("llm client: model unavailable")

	// ErrInvalidResponse is returned when the endpoint answers with a body
	// this client cannot interpret
	ErrInvalidResponse = errors.New("llm client: invalid response")

	// ErrInternal is returned on request construction failures
	ErrInternal = errors.New("llm client: internal error")
)
