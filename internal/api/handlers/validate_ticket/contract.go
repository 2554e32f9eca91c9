package validate_ticket

import "github.com/kamaubrian/TwendeBus-AssistantService/internal/service/boarding"

// BoardingService validates tickets at the gate.
type BoardingService interface {
	ValidateTicket(ticketID string) (*boarding.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
