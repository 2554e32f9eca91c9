package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/crm"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubContacts struct {
	contacts []crm.Contact
	err      error
}

func (s *stubContacts) GetContactsWithGracefulDegradation(context.Context) ([]crm.Contact, error) {
	return s.contacts, s.err
}

// stubSender fails deliveries to numbers in failFor.
type stubSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (s *stubSender) Send(_ context.Context, to, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[to] {
		return errors.New("provider rejected")
	}
	s.sent = append(s.sent, to)
	return nil
}

func contactsFixture() []crm.Contact {
	return []crm.Contact{
		{Name: "Achieng", Phone: "0712000001"},
		{Name: "Baraka", Phone: "0712000002"},
		{Name: "Chep", Phone: "0712000003"},
	}
}

func TestDispatchCountsSuccessesOnly(t *testing.T) {
	sender := &stubSender{failFor: map[string]bool{"0712000002": true}}
	svc := NewService(sender, &stubContacts{contacts: contactsFixture()}, 2, nopLogger{})

	res, err := svc.Dispatch(context.Background(), "Safiri na TwendeBus leo!")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Delivered)
	assert.Equal(t, 3, res.Total)
	assert.NotEmpty(t, res.BatchID)
	assert.Len(t, sender.sent, 2)
}

func TestDispatchEmptyMessage(t *testing.T) {
	svc := NewService(&stubSender{}, &stubContacts{contacts: contactsFixture()}, 2, nopLogger{})

	_, err := svc.Dispatch(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestDispatchContactFetchFails(t *testing.T) {
	svc := NewService(&stubSender{}, &stubContacts{err: errors.New("crm down")}, 2, nopLogger{})

	_, err := svc.Dispatch(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestDispatchNoContacts(t *testing.T) {
	svc := NewService(&stubSender{}, &stubContacts{}, 2, nopLogger{})

	_, err := svc.Dispatch(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoRecipients)
}
