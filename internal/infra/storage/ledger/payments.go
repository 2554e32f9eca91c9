package ledger

import (
	"fmt"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// CreatePayment records a freshly initiated push payment in PENDING state,
// keyed by the gateway-issued checkout reference.
func (s *Store) CreatePayment(reference, phone string, amount float64) (*domain.PaymentRecord, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: empty checkout reference", ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record := &domain.PaymentRecord{
		Reference: reference,
		Phone:     phone,
		Amount:    amount,
		Status:    domain.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.payments[reference] = record

	out := *record
	return &out, nil
}

// GetPayment returns a copy of the payment record for a checkout reference.
func (s *Store) GetPayment(reference string) (*domain.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.payments[reference]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	out := *record
	return &out, nil
}

// SetPaymentStatus records the status the gateway reported for a checkout
// reference. The ledger never invents a transition on its own.
func (s *Store) SetPaymentStatus(reference string, status domain.PaymentStatus) (*domain.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.payments[reference]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	record.Status = status
	record.UpdatedAt = s.now()

	out := *record
	return &out, nil
}
