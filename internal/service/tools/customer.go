package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/mpesa"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/usecase/book_ticket"
)

// CustomerLedger is the slice of the booking ledger customer tools need.
type CustomerLedger interface {
	SearchRoutes(origin, destination string) []*domain.Route
	GetRoute(id string) (*domain.Route, error)
	CreatePayment(reference, phone string, amount float64) (*domain.PaymentRecord, error)
	GetPayment(reference string) (*domain.PaymentRecord, error)
	SetPaymentStatus(reference string, status domain.PaymentStatus) (*domain.PaymentRecord, error)
	CreateComplaint(c *domain.Complaint) (*domain.Complaint, error)
}

// PaymentGateway initiates and polls push payments.
type PaymentGateway interface {
	Initiate(ctx context.Context, phone string, amount float64) (*mpesa.CheckoutResult, error)
	Status(ctx context.Context, reference string) (*mpesa.StatusResult, error)
}

// TicketBooker runs the booking use case.
type TicketBooker interface {
	Execute(ctx context.Context, req *book_ticket.Request) (*book_ticket.Response, error)
}

// CustomerDeps wires the customer catalogue.
type CustomerDeps struct {
	Ledger  CustomerLedger
	Gateway PaymentGateway
	Booker  TicketBooker
	Logger  Logger
	Now     func() time.Time // nil means time.Now
}

// routeView is the model-visible projection of a route.
type routeView struct {
	RouteID        string   `json:"routeId"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	DepartureTime  string   `json:"departureTime"`
	Price          float64  `json:"price"`
	BusClass       string   `json:"busClass"`
	AvailableSeats int      `json:"availableSeats"`
	Stops          []string `json:"stops,omitempty"`
}

func toRouteView(r *domain.Route) routeView {
	return routeView{
		RouteID:        r.ID,
		Origin:         r.Origin,
		Destination:    r.Destination,
		DepartureTime:  r.DepartureTime.Format(time.RFC3339),
		Price:          r.Price,
		BusClass:       string(r.BusClass),
		AvailableSeats: r.AvailableSeats,
		Stops:          r.Stops,
	}
}

// ticketView is the model-visible projection of an issued ticket. The
// scannable QR content is deliberately absent.
type ticketView struct {
	TicketID      string  `json:"ticketId"`
	PassengerName string  `json:"passengerName"`
	RouteID       string  `json:"routeId"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departureTime"`
	SeatNumber    int     `json:"seatNumber"`
	Price         float64 `json:"price"`
	BusClass      string  `json:"busClass"`
	PaymentRef    string  `json:"paymentRef"`
}

// NewCustomerRegistry assembles the customer-facing catalogue.
func NewCustomerRegistry(deps CustomerDeps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	r := NewRegistry("customer", deps.Logger)

	r.register(Tool{
		Name:        "searchRoutes",
		Description: "Search scheduled routes by origin and destination. The destination matches terminal stops and intermediate stops.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"origin": {"type": "string", "description": "Departure town, e.g. Nairobi"},
				"destination": {"type": "string", "description": "Destination town or any stop along the way"}
			},
			"required": ["origin", "destination"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				Origin      string `json:"origin"`
				Destination string `json:"destination"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if strings.TrimSpace(in.Origin) == "" || strings.TrimSpace(in.Destination) == "" {
				return nil, errors.New("origin and destination are required")
			}
			routes := deps.Ledger.SearchRoutes(in.Origin, in.Destination)
			views := make([]routeView, 0, len(routes))
			for _, route := range routes {
				views = append(views, toRouteView(route))
			}
			return map[string]interface{}{"routes": views, "count": len(views)}, nil
		},
	})

	r.register(Tool{
		Name:        "initiatePayment",
		Description: "Send an M-Pesa payment prompt to the customer's phone. Returns a checkout reference to verify later.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"phone": {"type": "string", "description": "Customer phone number, e.g. 0712345678"},
				"amount": {"type": "number", "description": "Amount in KES"}
			},
			"required": ["phone", "amount"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				Phone  string  `json:"phone"`
				Amount float64 `json:"amount"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if strings.TrimSpace(in.Phone) == "" {
				return nil, errors.New("phone is required")
			}
			if in.Amount <= 0 {
				return nil, errors.New("amount must be positive")
			}

			checkout, err := deps.Gateway.Initiate(ctx, in.Phone, in.Amount)
			if err != nil {
				// No record without a reference; the failure kind tells
				// the model what to say.
				return nil, fmt.Errorf("payment prompt failed (%s): %v", mpesa.KindOf(err), err)
			}
			if _, err := deps.Ledger.CreatePayment(checkout.Reference, in.Phone, in.Amount); err != nil {
				return nil, fmt.Errorf("payment initiated but not recorded: %v", err)
			}
			return map[string]interface{}{
				"reference": checkout.Reference,
				"status":    string(mpesa.StatePending),
				"message":   checkout.Message,
			}, nil
		},
	})

	r.register(Tool{
		Name:        "verifyPayment",
		Description: "Check the current status of a payment by its checkout reference.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"reference": {"type": "string", "description": "Checkout reference from initiatePayment"}
			},
			"required": ["reference"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				Reference string `json:"reference"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if _, err := deps.Ledger.GetPayment(in.Reference); err != nil {
				return nil, fmt.Errorf("unknown payment reference %q", in.Reference)
			}

			status, err := deps.Gateway.Status(ctx, in.Reference)
			if err != nil {
				return nil, fmt.Errorf("could not reach the payment gateway: %v", err)
			}
			record, err := deps.Ledger.SetPaymentStatus(in.Reference, paymentStateToStatus(status.State))
			if err != nil {
				return nil, fmt.Errorf("could not record payment status: %v", err)
			}
			return map[string]interface{}{
				"reference": record.Reference,
				"status":    string(record.Status),
				"message":   status.Message,
			}, nil
		},
	})

	r.register(Tool{
		Name:        "bookTicket",
		Description: "Issue a ticket on a route against a completed payment. The payment is re-verified with the gateway first.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"routeId": {"type": "string", "description": "Route id from searchRoutes"},
				"passengerName": {"type": "string", "description": "Full passenger name"},
				"paymentRef": {"type": "string", "description": "Checkout reference of a completed payment"}
			},
			"required": ["routeId", "passengerName", "paymentRef"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				RouteID       string `json:"routeId"`
				PassengerName string `json:"passengerName"`
				PaymentRef    string `json:"paymentRef"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			resp, err := deps.Booker.Execute(ctx, &book_ticket.Request{
				RouteID:       in.RouteID,
				PassengerName: in.PassengerName,
				PaymentRef:    in.PaymentRef,
			})
			if err != nil {
				return nil, bookingFailure(err)
			}
			return ticketView{
				TicketID:      resp.TicketID,
				PassengerName: resp.PassengerName,
				RouteID:       resp.RouteID,
				Origin:        resp.Origin,
				Destination:   resp.Destination,
				DepartureTime: resp.DepartureTime.Format(time.RFC3339),
				SeatNumber:    resp.SeatNumber,
				Price:         resp.Price,
				BusClass:      string(resp.BusClass),
				PaymentRef:    resp.PaymentRef,
			}, nil
		},
	})

	r.register(Tool{
		Name:        "logComplaint",
		Description: "Log a customer complaint for operator follow-up.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"customerName": {"type": "string"},
				"issue": {"type": "string", "description": "What happened"},
				"severity": {"type": "string", "enum": ["low", "medium", "high"]},
				"phone": {"type": "string", "description": "Contact number, optional"},
				"incidentDate": {"type": "string", "description": "YYYY-MM-DD, optional"},
				"routeId": {"type": "string", "description": "Related route, optional"}
			},
			"required": ["customerName", "issue", "severity"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				CustomerName string `json:"customerName"`
				Issue        string `json:"issue"`
				Severity     string `json:"severity"`
				Phone        string `json:"phone"`
				IncidentDate string `json:"incidentDate"`
				RouteID      string `json:"routeId"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			complaint := &domain.Complaint{
				CustomerName: strings.TrimSpace(in.CustomerName),
				Phone:        strings.TrimSpace(in.Phone),
				Issue:        strings.TrimSpace(in.Issue),
				Severity:     domain.ComplaintSeverity(in.Severity),
				RouteID:      in.RouteID,
			}
			if in.IncidentDate != "" {
				day, err := time.Parse(domain.DateFormat, in.IncidentDate)
				if err != nil {
					return nil, fmt.Errorf("incidentDate must be YYYY-MM-DD: %v", err)
				}
				complaint.IncidentDate = &day
			}
			created, err := deps.Ledger.CreateComplaint(complaint)
			if err != nil {
				return nil, fmt.Errorf("could not log complaint: %v", err)
			}
			return map[string]interface{}{
				"complaintId": created.ID,
				"status":      string(created.Status),
				"severity":    string(created.Severity),
			}, nil
		},
	})

	r.register(trackBusTool(deps.Ledger, deps.Now))

	return r
}

// trackBusTool is shared between the customer and operator catalogues.
func trackBusTool(routes interface {
	GetRoute(id string) (*domain.Route, error)
}, now func() time.Time) Tool {
	return Tool{
		Name:        "trackBus",
		Description: "Estimate where a bus is on its route right now, based on the timetable.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"routeId": {"type": "string", "description": "Route id from searchRoutes"}
			},
			"required": ["routeId"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				RouteID string `json:"routeId"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			route, err := routes.GetRoute(in.RouteID)
			if err != nil {
				return nil, fmt.Errorf("unknown route %q", in.RouteID)
			}
			return trackRoute(route, now()), nil
		},
	}
}

// bookingFailure rewrites use case errors into messages the model can
// relay to the customer.
func bookingFailure(err error) error {
	switch {
	case errors.Is(err, book_ticket.ErrPaymentNotCompleted):
		return errors.New("payment is not completed yet; ask the customer to approve the prompt, then verify again")
	case errors.Is(err, book_ticket.ErrPaymentConsumed):
		return errors.New("this payment already bought a ticket; a new payment is needed for another seat")
	case errors.Is(err, book_ticket.ErrPaymentNotFound):
		return errors.New("no payment with that reference; initiate a payment first")
	case errors.Is(err, book_ticket.ErrNoSeatsAvailable):
		return errors.New("the bus sold out before this booking; the payment will be refunded")
	case errors.Is(err, book_ticket.ErrRouteNotFound):
		return errors.New("that route does not exist")
	case errors.Is(err, book_ticket.ErrGatewayUnavailable):
		return errors.New("the payment gateway is unreachable; try again shortly")
	default:
		return fmt.Errorf("booking failed: %v", err)
	}
}

func paymentStateToStatus(state mpesa.PaymentState) domain.PaymentStatus {
	switch state {
	case mpesa.StateCompleted:
		return domain.PaymentCompleted
	case mpesa.StateFailed:
		return domain.PaymentFailed
	default:
		return domain.PaymentPending
	}
}
