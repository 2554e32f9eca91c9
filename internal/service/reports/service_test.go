package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func seedLedger(t *testing.T) (*ledger.Store, *domain.Route, *domain.Route) {
	t.Helper()
	store := ledger.New()
	nakuru, err := store.CreateRoute(&domain.Route{
		Origin:        "Nairobi",
		Destination:   "Nakuru",
		DepartureTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Price:         800,
		Capacity:      10,
		BusClass:      domain.ClassEconomy,
	})
	require.NoError(t, err)
	kisumu, err := store.CreateRoute(&domain.Route{
		Origin:        "Nairobi",
		Destination:   "Kisumu",
		DepartureTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Price:         1500,
		Capacity:      40,
		BusClass:      domain.ClassBusiness,
	})
	require.NoError(t, err)

	book := func(route *domain.Route, ref, name string) *domain.Ticket {
		_, err := store.CreatePayment(ref, "0712345678", route.Price)
		require.NoError(t, err)
		_, err = store.SetPaymentStatus(ref, domain.PaymentCompleted)
		require.NoError(t, err)
		ticket, err := store.IssueTicket(route.ID, name, ref, "")
		require.NoError(t, err)
		return ticket
	}
	book(nakuru, "CRQ-1", "Achieng Odhiambo")
	book(nakuru, "CRQ-2", "Baraka Mwangi")
	book(kisumu, "CRQ-3", "Chepkoech Rotich")
	return store, nakuru, kisumu
}

func TestFinancialGroupsByRoute(t *testing.T) {
	store, nakuru, kisumu := seedLedger(t)
	svc := NewService(store, nopLogger{})

	report, err := svc.Financial(time.Now().UTC().Add(-time.Hour), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalTickets)
	assert.InDelta(t, 3100, report.TotalRevenue, 0.01)
	require.Len(t, report.Routes, 2)

	// Sorted by revenue, Nakuru (1600) ahead of Kisumu (1500).
	assert.Equal(t, nakuru.ID, report.Routes[0].RouteID)
	assert.Equal(t, 2, report.Routes[0].TicketsSold)
	assert.Equal(t, kisumu.ID, report.Routes[1].RouteID)
}

func TestFinancialRejectsInvertedPeriod(t *testing.T) {
	store, _, _ := seedLedger(t)
	svc := NewService(store, nopLogger{})

	now := time.Now().UTC()
	_, err := svc.Financial(now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestFinancialExcludesOutOfPeriodBookings(t *testing.T) {
	store, _, _ := seedLedger(t)
	svc := NewService(store, nopLogger{})

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	report, err := svc.Financial(past, past.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, report.TotalTickets)
	assert.Empty(t, report.Routes)
}

func TestOccupancyStatsFullestFirst(t *testing.T) {
	store, nakuru, kisumu := seedLedger(t)
	svc := NewService(store, nopLogger{})

	stats := svc.OccupancyStats()
	require.Len(t, stats, 2)
	assert.Equal(t, nakuru.ID, stats[0].RouteID)
	assert.InDelta(t, 20.0, stats[0].OccupancyPct, 0.01)
	assert.Equal(t, kisumu.ID, stats[1].RouteID)
	assert.InDelta(t, 2.5, stats[1].OccupancyPct, 0.01)
}

func TestRouteManifestOrderedBySeat(t *testing.T) {
	store, nakuru, _ := seedLedger(t)
	svc := NewService(store, nopLogger{})

	manifest, err := svc.RouteManifest(nakuru.ID)
	require.NoError(t, err)
	require.Len(t, manifest.Passengers, 2)
	assert.Equal(t, 1, manifest.Passengers[0].SeatNumber)
	assert.Equal(t, "Achieng Odhiambo", manifest.Passengers[0].PassengerName)
	assert.Equal(t, 2, manifest.Passengers[1].SeatNumber)
}

func TestRouteManifestUnknownRoute(t *testing.T) {
	store, _, _ := seedLedger(t)
	svc := NewService(store, nopLogger{})

	_, err := svc.RouteManifest("RTE-missing")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestManifestPDFRenders(t *testing.T) {
	store, nakuru, _ := seedLedger(t)
	svc := NewService(store, nopLogger{})

	data, err := svc.ManifestPDF(nakuru.ID)
	require.NoError(t, err)
	assert.True(t, len(data) > 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
