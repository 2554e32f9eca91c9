package ledger

import (
	"fmt"
	"sort"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// IssueTicket atomically checks the payment record, decrements the seat
// inventory and creates a ticket. The seat number is assigned sequentially
// as capacity minus remaining seats at the booking instant. On success the
// payment record is marked consumed, so one payment backs at most one
// ticket.
//
// Callers must re-verify the payment status with the gateway before calling
// this; the ledger only trusts the locally recorded status at the instant
// of issue.
func (s *Store) IssueTicket(routeID, passengerName, paymentRef, userID string) (*domain.Ticket, error) {
	if passengerName == "" || len(passengerName) > domain.MaxPassengerNameLen {
		return nil, fmt.Errorf("%w: passenger name", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentRef]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != domain.PaymentCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrPaymentNotCompleted, payment.Status)
	}
	if payment.Consumed {
		return nil, ErrPaymentConsumed
	}

	route, ok := s.routes[routeID]
	if !ok {
		return nil, ErrRouteNotFound
	}
	if route.AvailableSeats <= 0 {
		// Payment succeeded but the route filled up in the meantime.
		// Surfaced to the caller for external refund handling.
		return nil, ErrNoSeatsAvailable
	}

	route.AvailableSeats--
	route.UpdatedAt = s.now()
	seat := route.Capacity - route.AvailableSeats

	ticket := &domain.Ticket{
		ID:             newID("TKT"),
		PassengerName:  passengerName,
		RouteID:        route.ID,
		Origin:         route.Origin,
		Destination:    route.Destination,
		DepartureTime:  route.DepartureTime,
		Price:          route.Price,
		BusClass:       route.BusClass,
		SeatNumber:     seat,
		Status:         domain.TicketBooked,
		BoardingStatus: domain.BoardingPending,
		PaymentRef:     paymentRef,
		BookedAt:       s.now(),
		UserID:         userID,
	}
	ticket.QRPayload = fmt.Sprintf("TWB|%s|%s|%d", ticket.ID, ticket.RouteID, ticket.SeatNumber)

	payment.Consumed = true
	payment.UpdatedAt = s.now()

	s.tickets[ticket.ID] = ticket

	out := *ticket
	return &out, nil
}

// GetTicket returns a copy of the ticket with the given id.
func (s *Store) GetTicket(id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	out := *ticket
	return &out, nil
}

// TicketsByRoute returns copies of all tickets on a route, ordered by seat
// number. Used for manifests and occupancy reporting.
func (s *Store) TicketsByRoute(routeID string) ([]*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.routes[routeID]; !ok {
		return nil, ErrRouteNotFound
	}

	var out []*domain.Ticket
	for _, t := range s.tickets {
		if t.RouteID == routeID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out, nil
}

// ListTickets returns copies of every ticket in the ledger, newest first.
func (s *Store) ListTickets() []*domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BookedAt.After(out[j].BookedAt)
	})
	return out
}

// MarkBoarded transitions a ticket's boarding status from pending to
// boarded. The transition happens at most once: a cancelled ticket or one
// already boarded fails deterministically on every subsequent call.
func (s *Store) MarkBoarded(id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	if ticket.Status == domain.TicketCancelled {
		return nil, ErrTicketCancelled
	}
	if ticket.BoardingStatus == domain.BoardingBoarded {
		return nil, ErrAlreadyBoarded
	}

	ticket.BoardingStatus = domain.BoardingBoarded

	out := *ticket
	return &out, nil
}
