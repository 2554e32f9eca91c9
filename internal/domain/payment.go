package domain

import "time"

// PaymentStatus represents the gateway-reported status of a push payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentRecord tracks one push-payment attempt, keyed by the
// gateway-issued checkout reference. Status only ever changes to what the
// gateway reports; it is never inferred locally.
type PaymentRecord struct {
	Reference string
	Phone     string
	Amount    float64
	Status    PaymentStatus
	Consumed  bool // set once a ticket has been issued against this payment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBackTicket returns true if a ticket may be issued against this record.
func (p *PaymentRecord) CanBackTicket() bool {
	return p.Status == PaymentCompleted && !p.Consumed
}

// IsFinal returns true once the gateway has reported a terminal status.
func (p *PaymentRecord) IsFinal() bool {
	return p.Status == PaymentCompleted || p.Status == PaymentFailed
}
