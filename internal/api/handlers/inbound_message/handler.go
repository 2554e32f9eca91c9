package inbound_message

import (
	"context"
	"net/http"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/whatsapp"
)

const msgInvalidPayload = "invalid webhook payload"

// processTimeout bounds one conversation turn end to end, including
// model and tool calls.
const processTimeout = 120 * time.Second

type Handler struct {
	orchestrator Orchestrator
	sender       Sender
	verifyToken  string
	logger       Logger
}

func NewHandler(orchestrator Orchestrator, sender Sender, verifyToken string, logger Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		sender:       sender,
		verifyToken:  verifyToken,
		logger:       logger,
	}
}

// HandleVerify handles GET /webhook, the provider subscription handshake.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("hub.mode") == "subscribe" && query.Get("hub.verify_token") == h.verifyToken {
		h.logger.Info("GET /webhook - verification handshake accepted")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(query.Get("hub.challenge")))
		return
	}
	h.logger.Warn("GET /webhook - verification handshake rejected")
	w.WriteHeader(http.StatusForbidden)
}

// Handle handles POST /webhook. It acks immediately and processes each text message
// asynchronously so the provider never retries on slow model turns.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload whatsapp.Payload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		h.logger.Warn("POST /webhook - invalid payload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil {
					h.logger.Info("POST /webhook - ignoring %q message from %s", msg.Type, msg.From)
					continue
				}
				go h.process(msg.From, msg.Text.Body)
			}
		}
	}

	// Delivery receipts and ignored events still get a 200.
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) process(senderID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	reply := h.orchestrator.HandleMessage(ctx, senderID, text)
	if err := h.sender.Send(ctx, senderID, reply); err != nil {
		h.logger.Error("POST /webhook - reply to %s not delivered: %v", senderID, err)
	}
}
