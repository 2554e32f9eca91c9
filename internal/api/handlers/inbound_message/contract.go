package inbound_message

import "context"

// Orchestrator runs the customer conversation loop.
type Orchestrator interface {
	HandleMessage(ctx context.Context, senderID, text string) string
}

// Sender delivers the reply back to the customer.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
