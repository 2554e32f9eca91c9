package mpesa

import "errors"

var (
	// ErrAuth is returned when the gateway refuses our credentials.
	// No checkout reference is issued.
	ErrAuth = errors.New("mpesa client: authentication failed")

	// ErrRejected is returned when the gateway rejects the push request
	// itself (bad phone number, bad amount). No checkout reference is issued.
	ErrRejected = errors.New("mpesa client: push request rejected")

	// ErrSystem is returned on transport failures or gateway server errors
	ErrSystem = errors.New("mpesa client: gateway system error")

	// ErrInvalidResponse is returned when the gateway answers with a body
	// this client cannot interpret
	ErrInvalidResponse = errors.New("mpesa client: invalid response")

	// ErrUnknownReference is returned when the gateway does not recognize
	// the checkout reference
	ErrUnknownReference = errors.New("mpesa client: unknown checkout reference")
)

// ErrorKind is the coarse failure classification surfaced to conversation
// tools, matching the gateway adapter contract.
type ErrorKind string

const (
	KindAuthError   ErrorKind = "AUTH_ERROR"
	KindRejected    ErrorKind = "REJECTED"
	KindSystemError ErrorKind = "SYSTEM_ERROR"
)

// KindOf classifies a client error for tool result payloads.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrAuth):
		return KindAuthError
	case errors.Is(err, ErrRejected):
		return KindRejected
	default:
		return KindSystemError
	}
}
