package crm

import "errors"

var (
	// ErrInternal is returned on internal client failures
	ErrInternal = errors.New("crm client: internal error")

	// ErrInvalidResponse is returned when the CRM answers with a body this
	// client cannot interpret
	ErrInvalidResponse = errors.New("crm client: invalid response")

	// ErrServiceDegraded is returned when the CRM is unreachable and
	// callers should fall back to an empty contact list
	ErrServiceDegraded = errors.New("crm unavailable: graceful degradation applied")
)
