package book_ticket

import (
	"context"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/mpesa"
)

// Ledger is the slice of the booking ledger this use case needs.
type Ledger interface {
	GetPayment(reference string) (*domain.PaymentRecord, error)
	SetPaymentStatus(reference string, status domain.PaymentStatus) (*domain.PaymentRecord, error)
	IssueTicket(routeID, passengerName, paymentRef, userID string) (*domain.Ticket, error)
}

// PaymentGateway answers status queries for a checkout reference.
type PaymentGateway interface {
	Status(ctx context.Context, reference string) (*mpesa.StatusResult, error)
}

// Archiver persists the audit trail. May be a no-op when archiving is
// disabled; failures are logged and never fail the booking.
type Archiver interface {
	SaveTicket(ctx context.Context, ticket *domain.Ticket) error
	SavePayment(ctx context.Context, payment *domain.PaymentRecord) error
}

// Logger is the logging interface this use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
