package operator_message

import "context"

// Orchestrator runs the operator conversation loop.
type Orchestrator interface {
	HandleMessage(ctx context.Context, senderID, text string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
