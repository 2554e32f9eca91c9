package book_ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/mpesa"
)

// UseCase issues a ticket against a completed payment. The payment status
// is re-verified with the gateway at the moment of booking; a status
// cached from an earlier conversation turn is never trusted.
type UseCase struct {
	ledger   Ledger
	gateway  PaymentGateway
	archiver Archiver
	logger   Logger
}

// NewUseCase creates the booking use case. archiver may be nil when the
// audit archive is disabled.
func NewUseCase(ledgerStore Ledger, gateway PaymentGateway, archiver Archiver, logger Logger) *UseCase {
	return &UseCase{
		ledger:   ledgerStore,
		gateway:  gateway,
		archiver: archiver,
		logger:   logger,
	}
}

// Execute re-verifies the payment and atomically issues the ticket.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookTicket: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookTicket: route=%s, passenger=%s, ref=%s",
		req.RouteID, req.PassengerName, req.PaymentRef)

	// The reference must have been initiated through this service.
	if _, err := uc.ledger.GetPayment(req.PaymentRef); err != nil {
		if errors.Is(err, ledger.ErrPaymentNotFound) {
			uc.logger.Warn("BookTicket: unknown payment reference %s", req.PaymentRef)
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: payment lookup: %v", ErrInternal, err)
	}

	// Re-verify with the gateway at the booking instant.
	status, err := uc.gateway.Status(ctx, req.PaymentRef)
	if err != nil {
		uc.logger.Error("BookTicket: gateway status query failed for ref=%s: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	record, err := uc.ledger.SetPaymentStatus(req.PaymentRef, toDomainStatus(status.State))
	if err != nil {
		return nil, fmt.Errorf("%w: record gateway status: %v", ErrInternal, err)
	}

	if record.Status != domain.PaymentCompleted {
		uc.logger.Warn("BookTicket: refusing, payment ref=%s is %s", req.PaymentRef, record.Status)
		return nil, fmt.Errorf("%w: gateway reports %s", ErrPaymentNotCompleted, record.Status)
	}

	// Seat decrement and ticket creation are one atomic ledger step; the
	// payment is marked consumed inside the same critical section.
	ticket, err := uc.ledger.IssueTicket(req.RouteID, req.PassengerName, req.PaymentRef, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrRouteNotFound):
			return nil, ErrRouteNotFound
		case errors.Is(err, ledger.ErrNoSeatsAvailable):
			uc.logger.Error("BookTicket: route %s sold out after payment ref=%s completed, refund required",
				req.RouteID, req.PaymentRef)
			return nil, ErrNoSeatsAvailable
		case errors.Is(err, ledger.ErrPaymentConsumed):
			return nil, ErrPaymentConsumed
		case errors.Is(err, ledger.ErrPaymentNotCompleted):
			return nil, ErrPaymentNotCompleted
		default:
			return nil, fmt.Errorf("%w: issue ticket: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("BookTicket: issued ticket %s, seat %d on %s", ticket.ID, ticket.SeatNumber, ticket.RouteID)
	uc.archive(ctx, ticket, req.PaymentRef)

	return &Response{
		TicketID:      ticket.ID,
		PassengerName: ticket.PassengerName,
		RouteID:       ticket.RouteID,
		Origin:        ticket.Origin,
		Destination:   ticket.Destination,
		DepartureTime: ticket.DepartureTime,
		SeatNumber:    ticket.SeatNumber,
		Price:         ticket.Price,
		BusClass:      ticket.BusClass,
		PaymentRef:    ticket.PaymentRef,
		BookedAt:      ticket.BookedAt,
		QRPayload:     ticket.QRPayload,
	}, nil
}

// archive writes the audit rows. Failures are logged only: the ticket is
// already committed in the ledger and must not be un-issued.
func (uc *UseCase) archive(ctx context.Context, ticket *domain.Ticket, paymentRef string) {
	if uc.archiver == nil {
		return
	}
	if err := uc.archiver.SaveTicket(ctx, ticket); err != nil {
		uc.logger.Error("BookTicket: archive ticket %s: %v", ticket.ID, err)
	}
	if record, err := uc.ledger.GetPayment(paymentRef); err == nil {
		if err := uc.archiver.SavePayment(ctx, record); err != nil {
			uc.logger.Error("BookTicket: archive payment %s: %v", paymentRef, err)
		}
	}
}

func toDomainStatus(state mpesa.PaymentState) domain.PaymentStatus {
	switch state {
	case mpesa.StateCompleted:
		return domain.PaymentCompleted
	case mpesa.StateFailed:
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}
