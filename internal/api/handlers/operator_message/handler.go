package operator_message

import (
	"net/http"
	"strings"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmptyText          = "text is required"
)

type Handler struct {
	orchestrator Orchestrator
	logger       Logger
}

func NewHandler(orchestrator Orchestrator, logger Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Handle handles POST /api/v1/operator/messages, the synchronous operator chat.
// The authenticated operator name doubles as the session id, so each
// operator keeps an independent conversation.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /operator/messages - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		handlers.RespondBadRequest(w, msgEmptyText)
		return
	}

	operator := middleware.Operator(r.Context())
	if operator == "" {
		operator = "operator"
	}

	reply := h.orchestrator.HandleMessage(r.Context(), "op:"+operator, req.Text)

	h.logger.Info("POST /operator/messages - turn handled for %s", operator)
	handlers.RespondJSON(w, http.StatusOK, Response{Reply: reply})
}
