package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/pkg/ptr"
)

func seedRoute(t *testing.T, s *Store, capacity int) *domain.Route {
	t.Helper()
	route, err := s.CreateRoute(&domain.Route{
		Origin:        "Nairobi",
		Destination:   "Kisumu",
		DepartureTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Price:         1500,
		Capacity:      capacity,
		BusClass:      domain.ClassEconomy,
		Stops:         []string{"Naivasha", "Nakuru", "Kericho"},
	})
	require.NoError(t, err)
	return route
}

func completedPayment(t *testing.T, s *Store, ref string) {
	t.Helper()
	_, err := s.CreatePayment(ref, "0712345678", 1500)
	require.NoError(t, err)
	_, err = s.SetPaymentStatus(ref, domain.PaymentCompleted)
	require.NoError(t, err)
}

func TestSearchRoutes(t *testing.T) {
	s := New()
	seedRoute(t, s, 40)

	t.Run("matches terminal destination", func(t *testing.T) {
		got := s.SearchRoutes("Nairobi", "Kisumu")
		require.Len(t, got, 1)
		assert.Equal(t, "Kisumu", got[0].Destination)
	})

	t.Run("matches intermediate stop", func(t *testing.T) {
		got := s.SearchRoutes("Nairobi", "Nakuru")
		require.Len(t, got, 1)
		assert.Equal(t, "Kisumu", got[0].Destination)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := s.SearchRoutes("nairobi", "kericho")
		require.Len(t, got, 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.SearchRoutes("Nairobi", "Mombasa"))
	})
}

func TestIssueTicket(t *testing.T) {
	t.Run("decrements seats and assigns sequential seat numbers", func(t *testing.T) {
		s := New()
		route := seedRoute(t, s, 40)

		completedPayment(t, s, "CRQ-1")
		first, err := s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-1", "wa-1")
		require.NoError(t, err)
		assert.Equal(t, 1, first.SeatNumber)
		assert.Equal(t, domain.TicketBooked, first.Status)
		assert.Equal(t, domain.BoardingPending, first.BoardingStatus)
		assert.NotEmpty(t, first.QRPayload)

		completedPayment(t, s, "CRQ-2")
		second, err := s.IssueTicket(route.ID, "Brian Kiprotich", "CRQ-2", "wa-2")
		require.NoError(t, err)
		assert.Equal(t, 2, second.SeatNumber)

		got, err := s.GetRoute(route.ID)
		require.NoError(t, err)
		assert.Equal(t, 38, got.AvailableSeats)
	})

	t.Run("refuses pending payment", func(t *testing.T) {
		s := New()
		route := seedRoute(t, s, 40)
		_, err := s.CreatePayment("CRQ-1", "0712345678", 1500)
		require.NoError(t, err)

		_, err = s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-1", "")
		assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	})

	t.Run("refuses unknown payment", func(t *testing.T) {
		s := New()
		route := seedRoute(t, s, 40)

		_, err := s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-404", "")
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("one payment backs at most one ticket", func(t *testing.T) {
		s := New()
		route := seedRoute(t, s, 40)
		completedPayment(t, s, "CRQ-1")

		_, err := s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-1", "")
		require.NoError(t, err)

		_, err = s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-1", "")
		assert.ErrorIs(t, err, ErrPaymentConsumed)

		got, err := s.GetRoute(route.ID)
		require.NoError(t, err)
		assert.Equal(t, 39, got.AvailableSeats, "second attempt must not touch inventory")
	})

	t.Run("full route fails even with completed payment", func(t *testing.T) {
		s := New()
		route := seedRoute(t, s, 1)
		completedPayment(t, s, "CRQ-1")
		_, err := s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-1", "")
		require.NoError(t, err)

		completedPayment(t, s, "CRQ-2")
		_, err = s.IssueTicket(route.ID, "Brian Kiprotich", "CRQ-2", "")
		assert.ErrorIs(t, err, ErrNoSeatsAvailable)

		got, err := s.GetRoute(route.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.AvailableSeats)
	})
}

// Concurrent bookings must never oversell the route or hand out
// duplicate seat numbers.
func TestIssueTicketConcurrent(t *testing.T) {
	s := New()
	route := seedRoute(t, s, 10)

	const attempts = 50
	for i := 0; i < attempts; i++ {
		completedPayment(t, s, refN(i))
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issued []*domain.Ticket
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticket, err := s.IssueTicket(route.ID, "Passenger", refN(i), "")
			if err == nil {
				mu.Lock()
				issued = append(issued, ticket)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, issued, 10, "exactly capacity tickets issued")

	got, err := s.GetRoute(route.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableSeats)

	seats := map[int]bool{}
	for _, tk := range issued {
		assert.False(t, seats[tk.SeatNumber], "duplicate seat %d", tk.SeatNumber)
		seats[tk.SeatNumber] = true
		assert.GreaterOrEqual(t, tk.SeatNumber, 1)
		assert.LessOrEqual(t, tk.SeatNumber, 10)
	}
}

func refN(i int) string {
	return "CRQ-" + string(rune('A'+i/26)) + string(rune('A'+i%26))
}

func TestMarkBoarded(t *testing.T) {
	s := New()
	route := seedRoute(t, s, 40)
	completedPayment(t, s, "CRQ-1")
	ticket, err := s.IssueTicket(route.ID, "Achieng Odhiambo", "CRQ-1", "")
	require.NoError(t, err)

	t.Run("first scan succeeds", func(t *testing.T) {
		boarded, err := s.MarkBoarded(ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BoardingBoarded, boarded.BoardingStatus)
	})

	t.Run("second scan always fails", func(t *testing.T) {
		_, err := s.MarkBoarded(ticket.ID)
		assert.ErrorIs(t, err, ErrAlreadyBoarded)
		// And keeps failing.
		_, err = s.MarkBoarded(ticket.ID)
		assert.ErrorIs(t, err, ErrAlreadyBoarded)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		_, err := s.MarkBoarded("TKT-nope")
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}

func TestRouteInvariantOnAdminEdits(t *testing.T) {
	s := New()
	route := seedRoute(t, s, 40)

	_, err := s.UpdateRoute(route.ID, RouteUpdate{AvailableSeats: ptr.Ptr(41)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.UpdateRoute(route.ID, RouteUpdate{AvailableSeats: ptr.Ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := s.UpdateRoute(route.ID, RouteUpdate{Price: ptr.Ptr(1800.0)})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, updated.Price)

	_, err = s.UpdateRoute("RT-nope", RouteUpdate{Price: ptr.Ptr(100.0)})
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestResolveComplaint(t *testing.T) {
	s := New()

	created, err := s.CreateComplaint(&domain.Complaint{
		CustomerName: "Wanjiru Kamau",
		Issue:        "Bus left twenty minutes early",
		Severity:     domain.SeverityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintOpen, created.Status)

	t.Run("unknown id mutates nothing", func(t *testing.T) {
		_, err := s.ResolveComplaint("CMP-nope", "done")
		assert.ErrorIs(t, err, ErrComplaintNotFound)

		got, err := s.GetComplaint(created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ComplaintOpen, got.Status)
	})

	t.Run("resolve once", func(t *testing.T) {
		resolved, err := s.ResolveComplaint(created.ID, "Refund issued")
		require.NoError(t, err)
		assert.Equal(t, domain.ComplaintResolved, resolved.Status)
		assert.Equal(t, "Refund issued", resolved.Resolution)

		_, err = s.ResolveComplaint(created.ID, "again")
		assert.ErrorIs(t, err, ErrComplaintResolved)
	})
}

