// Package broadcast fans a single operator message out to the customer
// base. Per-recipient outcomes stay in the logs; callers only ever see
// the aggregate success count.
package broadcast

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/crm"
)

// Sender delivers one message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// ContactSource lists broadcast recipients.
type ContactSource interface {
	GetContactsWithGracefulDegradation(ctx context.Context) ([]crm.Contact, error)
}

// Logger is the logging interface this service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service dispatches broadcasts.
type Service struct {
	sender   Sender
	contacts ContactSource
	workers  int
	logger   Logger
}

// NewService creates the dispatcher. workers bounds concurrent sends;
// values below 1 fall back to serial delivery.
func NewService(sender Sender, contacts ContactSource, workers int, logger Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		sender:   sender,
		contacts: contacts,
		workers:  workers,
		logger:   logger,
	}
}

// Result is the aggregate outcome of one broadcast. Failed recipients
// are deliberately not listed.
type Result struct {
	BatchID   string
	Delivered int
	Total     int
}

// Dispatch sends body to every known contact through a bounded worker
// pool and reports how many deliveries succeeded.
func (s *Service) Dispatch(ctx context.Context, body string) (*Result, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyMessage
	}
	if len(body) > domain.MaxBroadcastBodyLen {
		return nil, fmt.Errorf("%w: exceeds %d characters", ErrMessageTooLong, domain.MaxBroadcastBodyLen)
	}

	contacts, err := s.contacts.GetContactsWithGracefulDegradation(ctx)
	if err != nil {
		s.logger.Error("Dispatch: contact fetch failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrNoRecipients, err)
	}
	if len(contacts) == 0 {
		return nil, ErrNoRecipients
	}

	batchID := "BRD-" + uuid.NewString()
	s.logger.Info("Dispatch: batch %s to %d recipients", batchID, len(contacts))

	jobs := make(chan crm.Contact)
	var delivered int64
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for contact := range jobs {
				if err := s.sender.Send(ctx, contact.Phone, body); err != nil {
					s.logger.Warn("Dispatch: batch %s send to %s failed: %v", batchID, contact.Phone, err)
					continue
				}
				mu.Lock()
				delivered++
				mu.Unlock()
			}
		}()
	}

	for _, contact := range contacts {
		jobs <- contact
	}
	close(jobs)
	wg.Wait()

	s.logger.Info("Dispatch: batch %s delivered %d/%d", batchID, delivered, len(contacts))
	return &Result{
		BatchID:   batchID,
		Delivered: int(delivered),
		Total:     len(contacts),
	}, nil
}
