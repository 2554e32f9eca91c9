package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/mpesa"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/usecase/book_ticket"
)

// fakeGateway issues sequential references and reports a fixed state.
type fakeGateway struct {
	state   mpesa.PaymentState
	initErr error
	seq     int
}

func (g *fakeGateway) Initiate(_ context.Context, _ string, _ float64) (*mpesa.CheckoutResult, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}
	g.seq++
	return &mpesa.CheckoutResult{
		Reference: fmt.Sprintf("CRQ-%d", g.seq),
		Message:   "Prompt sent to handset",
	}, nil
}

func (g *fakeGateway) Status(_ context.Context, _ string) (*mpesa.StatusResult, error) {
	return &mpesa.StatusResult{State: g.state, Message: "fake"}, nil
}

func customerFixture(t *testing.T, gateway *fakeGateway) (*Registry, *ledger.Store, *domain.Route) {
	t.Helper()
	store := ledger.New()
	route, err := store.CreateRoute(&domain.Route{
		Origin:        "Nairobi",
		Destination:   "Kisumu",
		DepartureTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Price:         1500,
		Capacity:      40,
		BusClass:      domain.ClassBusiness,
		Stops:         []string{"Naivasha", "Nakuru", "Kericho"},
	})
	require.NoError(t, err)

	booker := book_ticket.NewUseCase(store, gateway, nil, nopLogger{})
	registry := NewCustomerRegistry(CustomerDeps{
		Ledger:  store,
		Gateway: gateway,
		Booker:  booker,
		Logger:  nopLogger{},
		Now: func() time.Time {
			return time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
		},
	})
	return registry, store, route
}

func execute(t *testing.T, r *Registry, name, args string) (map[string]interface{}, bool) {
	t.Helper()
	result, ok := r.Execute(context.Background(), name, json.RawMessage(args))
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	return payload, ok
}

func TestSearchRoutesMatchesIntermediateStop(t *testing.T) {
	registry, _, route := customerFixture(t, &fakeGateway{state: mpesa.StateCompleted})

	payload, ok := execute(t, registry, "searchRoutes",
		`{"origin":"nairobi","destination":"NAKURU"}`)
	require.True(t, ok)
	assert.EqualValues(t, 1, payload["count"])

	routes := payload["routes"].([]interface{})
	first := routes[0].(map[string]interface{})
	assert.Equal(t, route.ID, first["routeId"])
	assert.EqualValues(t, 40, first["availableSeats"])
}

func TestInitiatePaymentRecordsPendingLocally(t *testing.T) {
	registry, store, _ := customerFixture(t, &fakeGateway{state: mpesa.StatePending})

	payload, ok := execute(t, registry, "initiatePayment",
		`{"phone":"0712345678","amount":1500}`)
	require.True(t, ok)
	assert.Equal(t, "CRQ-1", payload["reference"])
	assert.Equal(t, "PENDING", payload["status"])

	record, err := store.GetPayment("CRQ-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, record.Status)
}

func TestInitiatePaymentGatewayRejectionCreatesNoRecord(t *testing.T) {
	gateway := &fakeGateway{initErr: fmt.Errorf("%w: insufficient funds profile", mpesa.ErrRejected)}
	registry, store, _ := customerFixture(t, gateway)

	payload, ok := execute(t, registry, "initiatePayment",
		`{"phone":"0712345678","amount":1500}`)
	assert.False(t, ok)
	assert.Contains(t, payload["error"], "REJECTED")

	_, err := store.GetPayment("CRQ-1")
	assert.ErrorIs(t, err, ledger.ErrPaymentNotFound)
}

func TestVerifyPaymentUpdatesLocalStatus(t *testing.T) {
	registry, store, _ := customerFixture(t, &fakeGateway{state: mpesa.StateCompleted})

	_, ok := execute(t, registry, "initiatePayment", `{"phone":"0712345678","amount":1500}`)
	require.True(t, ok)

	payload, ok := execute(t, registry, "verifyPayment", `{"reference":"CRQ-1"}`)
	require.True(t, ok)
	assert.Equal(t, "COMPLETED", payload["status"])

	record, err := store.GetPayment("CRQ-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, record.Status)
}

func TestVerifyPaymentUnknownReference(t *testing.T) {
	registry, _, _ := customerFixture(t, &fakeGateway{state: mpesa.StateCompleted})

	payload, ok := execute(t, registry, "verifyPayment", `{"reference":"CRQ-404"}`)
	assert.False(t, ok)
	assert.Contains(t, payload["error"], "CRQ-404")
}

// The scannable QR content must never appear in a model-visible result.
func TestBookTicketResultOmitsQRPayload(t *testing.T) {
	registry, _, route := customerFixture(t, &fakeGateway{state: mpesa.StateCompleted})

	_, ok := execute(t, registry, "initiatePayment", `{"phone":"0712345678","amount":1500}`)
	require.True(t, ok)

	result, ok := registry.Execute(context.Background(), "bookTicket", json.RawMessage(fmt.Sprintf(
		`{"routeId":%q,"passengerName":"Achieng Odhiambo","paymentRef":"CRQ-1"}`, route.ID)))
	require.True(t, ok)
	assert.NotContains(t, result, "qr")
	assert.NotContains(t, result, "QR")
	assert.NotContains(t, result, "TWB|")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.EqualValues(t, 1, payload["seatNumber"])
}

func TestBookTicketPendingPaymentFailsWithGuidance(t *testing.T) {
	registry, _, route := customerFixture(t, &fakeGateway{state: mpesa.StatePending})

	_, ok := execute(t, registry, "initiatePayment", `{"phone":"0712345678","amount":1500}`)
	require.True(t, ok)

	payload, ok := execute(t, registry, "bookTicket", fmt.Sprintf(
		`{"routeId":%q,"passengerName":"Achieng Odhiambo","paymentRef":"CRQ-1"}`, route.ID))
	assert.False(t, ok)
	assert.Contains(t, payload["error"], "not completed")
}

func TestLogComplaintCreatesOpenComplaint(t *testing.T) {
	registry, store, _ := customerFixture(t, &fakeGateway{})

	payload, ok := execute(t, registry, "logComplaint",
		`{"customerName":"Baraka Mwangi","issue":"Bus left 40 minutes late","severity":"medium","incidentDate":"2025-05-28"}`)
	require.True(t, ok)
	assert.Equal(t, "open", payload["status"])

	complaints := store.ListComplaints(nil)
	require.Len(t, complaints, 1)
	assert.Equal(t, "Baraka Mwangi", complaints[0].CustomerName)
	require.NotNil(t, complaints[0].IncidentDate)
}

func TestLogComplaintRejectsUnknownSeverity(t *testing.T) {
	registry, _, _ := customerFixture(t, &fakeGateway{})

	payload, ok := execute(t, registry, "logComplaint",
		`{"customerName":"Baraka","issue":"x","severity":"catastrophic"}`)
	assert.False(t, ok)
	assert.Contains(t, payload["error"], "severity")
}

func TestTrackBusBeforeDeparture(t *testing.T) {
	registry, _, route := customerFixture(t, &fakeGateway{})

	payload, ok := execute(t, registry, "trackBus", fmt.Sprintf(`{"routeId":%q}`, route.ID))
	require.True(t, ok)
	assert.Equal(t, "scheduled", payload["status"])
}

func TestTrackBusUnknownRoute(t *testing.T) {
	registry, _, _ := customerFixture(t, &fakeGateway{})

	payload, ok := execute(t, registry, "trackBus", `{"routeId":"RTE-missing"}`)
	assert.False(t, ok)
	assert.Contains(t, payload["error"], "RTE-missing")
}

func TestCustomerCatalogueShape(t *testing.T) {
	registry, _, _ := customerFixture(t, &fakeGateway{})

	var names []string
	for _, decl := range registry.Declarations() {
		names = append(names, decl.Function.Name)
	}
	assert.Equal(t, []string{
		"searchRoutes", "initiatePayment", "verifyPayment",
		"bookTicket", "logComplaint", "trackBus",
	}, names)
}
