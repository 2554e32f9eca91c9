package boarding

import "errors"

var (
	// ErrTicketNotFound is returned when the scanned id is unknown
	ErrTicketNotFound = errors.New("boarding: ticket not found")

	// ErrTicketCancelled is returned for a cancelled ticket
	ErrTicketCancelled = errors.New("boarding: ticket is cancelled")

	// ErrAlreadyUsed is returned when the ticket was already scanned;
	// repeat scans fail deterministically with this error
	ErrAlreadyUsed = errors.New("boarding: ticket already used")

	// ErrInternal is returned on internal failures
	ErrInternal = errors.New("boarding: internal error")
)
