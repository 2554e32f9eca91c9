// Package ledger holds the authoritative in-memory state of the booking
// system: routes and seat inventory, issued tickets, payment records and
// complaints. Multiple conversation goroutines mutate this state
// concurrently, so every read-modify-write sequence runs under the store
// mutex as a single critical section.
package ledger

import (
	"time"

	"sync"

	"github.com/google/uuid"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// Clock abstracts wall-clock time for deterministic tests.
type Clock func() time.Time

// Store is the in-memory booking ledger.
type Store struct {
	mu sync.RWMutex

	routes     map[string]*domain.Route
	tickets    map[string]*domain.Ticket
	payments   map[string]*domain.PaymentRecord
	complaints map[string]*domain.Complaint

	now Clock
}

// New creates an empty ledger.
func New() *Store {
	return &Store{
		routes:     make(map[string]*domain.Route),
		tickets:    make(map[string]*domain.Ticket),
		payments:   make(map[string]*domain.PaymentRecord),
		complaints: make(map[string]*domain.Complaint),
		now:        time.Now,
	}
}

// WithClock replaces the store's time source. Only call this from tests.
func (s *Store) WithClock(c Clock) *Store {
	s.now = c
	return s
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
