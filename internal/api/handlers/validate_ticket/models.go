package validate_ticket

// Request is one gate scan.
type Request struct {
	TicketID string `json:"ticketId"`
}

// Response confirms a successful boarding.
type Response struct {
	TicketID      string `json:"ticketId"`
	PassengerName string `json:"passengerName"`
	SeatNumber    int    `json:"seatNumber"`
	Message       string `json:"message"`
}
