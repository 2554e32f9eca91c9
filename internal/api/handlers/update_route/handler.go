package update_route

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgRouteNotFound      = "route not found"
	msgInvalidEdit        = "invalid route edit"
	msgNoFields           = "at least one field must be set"
)

type Handler struct {
	ledger Ledger
	logger Logger
}

func NewHandler(ledgerStore Ledger, logger Logger) *Handler {
	return &Handler{
		ledger: ledgerStore,
		logger: logger,
	}
}

// Handle PATCH /api/v1/routes/{routeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /routes/%s - invalid request body: %v", routeID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Price == nil && req.AvailableSeats == nil && req.DepartureTime == nil {
		handlers.RespondBadRequest(w, msgNoFields)
		return
	}

	updated, err := h.ledger.UpdateRoute(routeID, req.ToUpdate())
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrRouteNotFound):
			h.logger.Warn("PATCH /routes/%s - route not found", routeID)
			handlers.RespondNotFound(w, msgRouteNotFound)

		case errors.Is(err, ledger.ErrInvalidInput):
			h.logger.Warn("PATCH /routes/%s - rejected: %v", routeID, err)
			handlers.RespondBadRequest(w, msgInvalidEdit)

		default:
			h.logger.Error("PATCH /routes/%s - failed to update route: %v", routeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /routes/%s - route updated", routeID)
	handlers.RespondJSON(w, http.StatusOK, FromRoute(updated))
}
