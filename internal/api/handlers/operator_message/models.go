package operator_message

// Request is one operator chat turn.
type Request struct {
	Text string `json:"text"`
}

// Response carries the assistant reply.
type Response struct {
	Reply string `json:"reply"`
}
