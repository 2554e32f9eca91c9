package validate_ticket

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/boarding"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmptyTicketID      = "ticketId is required"
	msgTicketNotFound     = "ticket not found"
	msgTicketCancelled    = "ticket is cancelled"
	msgAlreadyUsed        = "ticket already used"
)

type Handler struct {
	service BoardingService
	logger  Logger
}

func NewHandler(service BoardingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/boarding/scan
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /boarding/scan - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.TicketID) == "" {
		handlers.RespondBadRequest(w, msgEmptyTicketID)
		return
	}

	result, err := h.service.ValidateTicket(req.TicketID)
	if err != nil {
		switch {
		case errors.Is(err, boarding.ErrTicketNotFound):
			h.logger.Warn("POST /boarding/scan - ticket not found: %s", req.TicketID)
			handlers.RespondNotFound(w, msgTicketNotFound)

		case errors.Is(err, boarding.ErrTicketCancelled):
			h.logger.Warn("POST /boarding/scan - cancelled ticket: %s", req.TicketID)
			handlers.RespondConflict(w, msgTicketCancelled)

		case errors.Is(err, boarding.ErrAlreadyUsed):
			h.logger.Warn("POST /boarding/scan - repeat scan: %s", req.TicketID)
			handlers.RespondConflict(w, msgAlreadyUsed)

		default:
			h.logger.Error("POST /boarding/scan - failed to validate %s: %v", req.TicketID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /boarding/scan - ticket %s boarded, seat %d", result.TicketID, result.SeatNumber)
	handlers.RespondJSON(w, http.StatusOK, Response{
		TicketID:      result.TicketID,
		PassengerName: result.PassengerName,
		SeatNumber:    result.SeatNumber,
		Message:       result.Message,
	})
}
