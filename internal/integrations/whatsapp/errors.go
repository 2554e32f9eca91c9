package whatsapp

import "errors"

var (
	// ErrSendFailed is returned when the gateway refuses or fails a send
	ErrSendFailed = errors.New("whatsapp client: send failed")

	// ErrInternal is returned on request construction failures
	ErrInternal = errors.New("whatsapp client: internal error")
)
