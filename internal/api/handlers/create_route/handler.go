package create_route

import (
	"errors"
	"net/http"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDeparture   = "invalid departure time, expected RFC 3339"
	msgInvalidRoute       = "invalid route definition"
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

// Handle POST /api/v1/routes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /routes - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	route, err := req.ToRoute()
	if err != nil {
		h.logger.Warn("POST /routes - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeparture)
		return
	}

	created, err := h.ledger.CreateRoute(route)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			h.logger.Warn("POST /routes - rejected: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoute)
			return
		}
		h.logger.Error("POST /routes - failed to create route: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /routes - route created: %s %s-%s", created.ID, created.Origin, created.Destination)
	handlers.RespondJSON(w, http.StatusCreated, FromRoute(created))
}
