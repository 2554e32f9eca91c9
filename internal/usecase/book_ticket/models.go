package book_ticket

import (
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// Request carries everything needed to issue one ticket.
type Request struct {
	RouteID       string
	PassengerName string
	PaymentRef    string // gateway-issued checkout reference
	UserID        string // sender id of the booking conversation, optional
}

// Response is the issued ticket.
type Response struct {
	TicketID      string
	PassengerName string
	RouteID       string
	Origin        string
	Destination   string
	DepartureTime time.Time
	SeatNumber    int
	Price         float64
	BusClass      domain.BusClass
	PaymentRef    string
	BookedAt      time.Time
	QRPayload     string
}
