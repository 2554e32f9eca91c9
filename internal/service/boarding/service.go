// Package boarding enforces single-use tickets at the point of physical
// boarding. It is invoked from the scanning interface, outside any
// conversation.
package boarding

import (
	"errors"
	"fmt"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
)

// Ledger is the slice of the booking ledger this service needs.
type Ledger interface {
	MarkBoarded(id string) (*domain.Ticket, error)
}

// Logger is the logging interface this service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service validates tickets at boarding.
type Service struct {
	ledger Ledger
	logger Logger
}

// NewService creates the boarding validator.
func NewService(ledgerStore Ledger, logger Logger) *Service {
	return &Service{ledger: ledgerStore, logger: logger}
}

// Result is the passenger-facing outcome of one scan.
type Result struct {
	TicketID      string
	PassengerName string
	SeatNumber    int
	Message       string
}

// ValidateTicket marks a ticket boarded exactly once. A second scan with
// the same id deterministically fails with ErrAlreadyUsed; there is no
// retry logic here.
func (s *Service) ValidateTicket(ticketID string) (*Result, error) {
	ticket, err := s.ledger.MarkBoarded(ticketID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrTicketNotFound):
			s.logger.Warn("ValidateTicket: unknown ticket %s", ticketID)
			return nil, ErrTicketNotFound
		case errors.Is(err, ledger.ErrTicketCancelled):
			s.logger.Warn("ValidateTicket: cancelled ticket %s presented", ticketID)
			return nil, ErrTicketCancelled
		case errors.Is(err, ledger.ErrAlreadyBoarded):
			s.logger.Warn("ValidateTicket: ticket %s already used", ticketID)
			return nil, ErrAlreadyUsed
		default:
			s.logger.Error("ValidateTicket: ledger error for %s: %v", ticketID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.logger.Info("ValidateTicket: ticket %s boarded, seat %d", ticket.ID, ticket.SeatNumber)
	return &Result{
		TicketID:      ticket.ID,
		PassengerName: ticket.PassengerName,
		SeatNumber:    ticket.SeatNumber,
		Message: fmt.Sprintf("Welcome aboard, %s! Seat %d on %s to %s.",
			ticket.PassengerName, ticket.SeatNumber, ticket.Origin, ticket.Destination),
	}, nil
}
