package ledger

import "errors"

var (
	// ErrRouteNotFound is returned when a route id is unknown
	ErrRouteNotFound = errors.New("ledger: route not found")

	// ErrNoSeatsAvailable is returned when a booking is attempted on a full route
	ErrNoSeatsAvailable = errors.New("ledger: no seats available")

	// ErrTicketNotFound is returned when a ticket id is unknown
	ErrTicketNotFound = errors.New("ledger: ticket not found")

	// ErrTicketCancelled is returned when a cancelled ticket is presented for boarding
	ErrTicketCancelled = errors.New("ledger: ticket is cancelled")

	// ErrAlreadyBoarded is returned when a ticket has already been used for boarding
	ErrAlreadyBoarded = errors.New("ledger: ticket already used for boarding")

	// ErrPaymentNotFound is returned when a checkout reference is unknown
	ErrPaymentNotFound = errors.New("ledger: payment record not found")

	// ErrPaymentNotCompleted is returned when issuing a ticket against a payment
	// whose status is not COMPLETED
	ErrPaymentNotCompleted = errors.New("ledger: payment not completed")

	// ErrPaymentConsumed is returned when a completed payment has already backed a ticket
	ErrPaymentConsumed = errors.New("ledger: payment already used for a ticket")

	// ErrComplaintNotFound is returned when a complaint id is unknown
	ErrComplaintNotFound = errors.New("ledger: complaint not found")

	// ErrComplaintResolved is returned when resolving an already-resolved complaint
	ErrComplaintResolved = errors.New("ledger: complaint already resolved")

	// ErrInvalidInput is returned when a mutation would violate a ledger invariant
	ErrInvalidInput = errors.New("ledger: invalid input")
)
