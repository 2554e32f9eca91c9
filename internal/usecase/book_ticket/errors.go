package book_ticket

import "errors"

var (
	// ErrRouteNotFound is returned when the route id is unknown
	ErrRouteNotFound = errors.New("book_ticket: route not found")

	// ErrNoSeatsAvailable is returned when the route filled up, even though
	// the payment succeeded; the caller must surface this for refund handling
	ErrNoSeatsAvailable = errors.New("book_ticket: no seats available")

	// ErrPaymentNotFound is returned when the checkout reference is unknown
	ErrPaymentNotFound = errors.New("book_ticket: payment record not found")

	// ErrPaymentNotCompleted is returned when the gateway does not report
	// COMPLETED at the moment of booking
	ErrPaymentNotCompleted = errors.New("book_ticket: payment not completed")

	// ErrPaymentConsumed is returned when the payment already backs a ticket
	ErrPaymentConsumed = errors.New("book_ticket: payment already used for a ticket")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be
	// queried at booking time; the booking is refused, never assumed
	ErrGatewayUnavailable = errors.New("book_ticket: payment gateway unavailable")

	// ErrInvalidInput is returned on malformed requests
	ErrInvalidInput = errors.New("book_ticket: invalid input data")

	// ErrInternal is returned on internal failures
	ErrInternal = errors.New("book_ticket: internal error")
)
