package whatsapp

// sendRequest is the outbound text-message payload.
type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// Inbound webhook envelope (provider-specific shape).

// Payload is the top-level webhook body.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the changes in one webhook delivery.
type Entry struct {
	Changes []Change `json:"changes"`
}

// Change wraps one value object.
type Change struct {
	Value Value `json:"value"`
}

// Value carries the actual inbound messages, if any. Status/delivery
// receipts arrive with an empty Messages slice.
type Value struct {
	Messages []InboundMessage `json:"messages"`
}

// InboundMessage is one message from an end user.
type InboundMessage struct {
	From string `json:"from"` // sender phone number, used as session id
	ID   string `json:"id"`
	Type string `json:"type"` // "text", "image", ...
	Text *Text  `json:"text,omitempty"`
}

// Text is the body of a text message.
type Text struct {
	Body string `json:"body"`
}
