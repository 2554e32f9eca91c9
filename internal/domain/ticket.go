package domain

import "time"

// TicketStatus represents the lifecycle status of a ticket.
type TicketStatus string

const (
	TicketBooked    TicketStatus = "booked"
	TicketCancelled TicketStatus = "cancelled"
)

// BoardingStatus represents whether a ticket has been used for boarding.
type BoardingStatus string

const (
	BoardingPending BoardingStatus = "pending"
	BoardingBoarded BoardingStatus = "boarded"
)

// Ticket represents an issued seat on a route. Route details are
// denormalized at booking time so later route edits don't rewrite history.
type Ticket struct {
	ID            string
	PassengerName string
	RouteID       string

	// Route snapshot at booking time
	Origin        string
	Destination   string
	DepartureTime time.Time
	Price         float64
	BusClass      BusClass

	SeatNumber     int
	Status         TicketStatus
	BoardingStatus BoardingStatus
	PaymentRef     string
	BookedAt       time.Time
	UserID         string // sender id of the booking conversation, optional
	QRPayload      string // scannable code content, never shown to the model
}

// IsActive returns true if the ticket has not been cancelled.
func (t *Ticket) IsActive() bool {
	return t.Status != TicketCancelled
}

// CanBoard returns true if the ticket is valid for boarding right now.
func (t *Ticket) CanBoard() bool {
	return t.Status == TicketBooked && t.BoardingStatus == BoardingPending
}

// AlreadyUsed returns true if the ticket was already scanned at boarding.
func (t *Ticket) AlreadyUsed() bool {
	return t.BoardingStatus == BoardingBoarded
}
