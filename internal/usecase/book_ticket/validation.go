package book_ticket

import (
	"fmt"
	"strings"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// validateRequest checks structural validity only; business checks
// (payment state, seat availability) happen against live state later.
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidInput)
	}
	if strings.TrimSpace(req.RouteID) == "" {
		return fmt.Errorf("%w: route id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PassengerName) == "" {
		return fmt.Errorf("%w: passenger name is required", ErrInvalidInput)
	}
	if len(req.PassengerName) > domain.MaxPassengerNameLen {
		return fmt.Errorf("%w: passenger name too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PaymentRef) == "" {
		return fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}
	return nil
}
