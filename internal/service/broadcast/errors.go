package broadcast

import "errors"

var (
	// ErrEmptyMessage is returned when the broadcast body is blank
	ErrEmptyMessage = errors.New("broadcast: empty message")

	// ErrMessageTooLong is returned when the body exceeds the provider limit
	ErrMessageTooLong = errors.New("broadcast: message too long")

	// ErrNoRecipients is returned when the contact list could not be
	// fetched and there is nobody to send to
	ErrNoRecipients = errors.New("broadcast: no recipients")

	// ErrInternal is returned on internal failures
	ErrInternal = errors.New("broadcast: internal error")
)
