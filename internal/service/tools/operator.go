package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/broadcast"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/reports"
)

// OperatorLedger is the slice of the booking ledger operator tools need.
type OperatorLedger interface {
	SearchRoutes(origin, destination string) []*domain.Route
	GetRoute(id string) (*domain.Route, error)
	ListComplaints(status *domain.ComplaintStatus) []*domain.Complaint
	ResolveComplaint(id, resolution string) (*domain.Complaint, error)
}

// Reporter builds operator summaries from ledger state.
type Reporter interface {
	Financial(from, to time.Time) (*reports.FinancialReport, error)
	OccupancyStats() []reports.RouteOccupancy
	RouteManifest(routeID string) (*reports.Manifest, error)
}

// Broadcaster fans one message out to the customer base.
type Broadcaster interface {
	Dispatch(ctx context.Context, body string) (*broadcast.Result, error)
}

// ComplaintArchiver mirrors resolved complaints into the audit trail.
// May be nil when the archive is disabled.
type ComplaintArchiver interface {
	SaveComplaint(ctx context.Context, c *domain.Complaint) error
}

// OperatorDeps wires the operator catalogue.
type OperatorDeps struct {
	Ledger      OperatorLedger
	Reporter    Reporter
	Broadcaster Broadcaster
	Archiver    ComplaintArchiver
	Logger      Logger
	Now         func() time.Time // nil means time.Now
}

// complaintView is the model-visible projection of a complaint.
type complaintView struct {
	ComplaintID  string `json:"complaintId"`
	CustomerName string `json:"customerName"`
	Issue        string `json:"issue"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	RouteID      string `json:"routeId,omitempty"`
	CreatedAt    string `json:"createdAt"`
	Resolution   string `json:"resolution,omitempty"`
}

func toComplaintView(c *domain.Complaint) complaintView {
	return complaintView{
		ComplaintID:  c.ID,
		CustomerName: c.CustomerName,
		Issue:        c.Issue,
		Severity:     string(c.Severity),
		Status:       string(c.Status),
		RouteID:      c.RouteID,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		Resolution:   c.Resolution,
	}
}

// manifestRow is the model-visible projection of one manifest entry.
// Ticket ids stay server-side; the operator chat only needs names and
// seats.
type manifestRow struct {
	SeatNumber    int    `json:"seatNumber"`
	PassengerName string `json:"passengerName"`
	Boarded       bool   `json:"boarded"`
}

// NewOperatorRegistry assembles the operator-facing catalogue.
func NewOperatorRegistry(deps OperatorDeps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	r := NewRegistry("operator", deps.Logger)

	r.register(Tool{
		Name:        "getFinancialReport",
		Description: "Ticket count and gross revenue per route over a booking period.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"from": {"type": "string", "description": "Period start, YYYY-MM-DD"},
				"to": {"type": "string", "description": "Period end, YYYY-MM-DD; defaults to today"}
			},
			"required": ["from"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				From string `json:"from"`
				To   string `json:"to"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			from, err := time.Parse(domain.DateFormat, in.From)
			if err != nil {
				return nil, fmt.Errorf("from must be YYYY-MM-DD: %v", err)
			}
			var to time.Time
			if in.To != "" {
				day, err := time.Parse(domain.DateFormat, in.To)
				if err != nil {
					return nil, fmt.Errorf("to must be YYYY-MM-DD: %v", err)
				}
				// Inclusive end of day.
				to = day.Add(24*time.Hour - time.Nanosecond)
			}
			report, err := deps.Reporter.Financial(from, to)
			if err != nil {
				return nil, fmt.Errorf("could not build report: %v", err)
			}
			return report, nil
		},
	})

	r.register(Tool{
		Name:        "getOccupancyStats",
		Description: "Seats sold, capacity and occupancy rate for every route, fullest first.",
		Parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
		Handler: func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			stats := deps.Reporter.OccupancyStats()
			return map[string]interface{}{"routes": stats, "count": len(stats)}, nil
		},
	})

	r.register(Tool{
		Name:        "broadcastMessage",
		Description: "Send a text message to the whole customer base. Reports how many deliveries succeeded.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"message": {"type": "string", "description": "Message body, max 1024 characters"}
			},
			"required": ["message"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				Message string `json:"message"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			result, err := deps.Broadcaster.Dispatch(ctx, in.Message)
			if err != nil {
				return nil, broadcastFailure(err)
			}
			return map[string]interface{}{"delivered": result.Delivered}, nil
		},
	})

	r.register(Tool{
		Name:        "getRouteManifest",
		Description: "Passenger list for one departure: seat, name and boarding state.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"routeId": {"type": "string", "description": "Route id"}
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
			manifest, err := deps.Reporter.RouteManifest(in.RouteID)
			if err != nil {
				return nil, fmt.Errorf("unknown route %q", in.RouteID)
			}
			rows := make([]manifestRow, 0, len(manifest.Passengers))
			for _, p := range manifest.Passengers {
				rows = append(rows, manifestRow{
					SeatNumber:    p.SeatNumber,
					PassengerName: p.PassengerName,
					Boarded:       p.Boarded,
				})
			}
			return map[string]interface{}{
				"routeId":       manifest.RouteID,
				"origin":        manifest.Origin,
				"destination":   manifest.Destination,
				"departureTime": manifest.DepartureTime.Format(time.RFC3339),
				"passengers":    rows,
				"count":         len(rows),
			}, nil
		},
	})

	r.register(Tool{
		Name:        "getComplaints",
		Description: "List customer complaints, optionally filtered by status.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"status": {"type": "string", "enum": ["open", "resolved"], "description": "Omit for all"}
			}
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				Status string `json:"status"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			var filter *domain.ComplaintStatus
			if in.Status != "" {
				status := domain.ComplaintStatus(in.Status)
				if status != domain.ComplaintOpen && status != domain.ComplaintResolved {
					return nil, fmt.Errorf("status must be open or resolved, got %q", in.Status)
				}
				filter = &status
			}
			complaints := deps.Ledger.ListComplaints(filter)
			views := make([]complaintView, 0, len(complaints))
			for _, c := range complaints {
				views = append(views, toComplaintView(c))
			}
			return map[string]interface{}{"complaints": views, "count": len(views)}, nil
		},
	})

	r.register(Tool{
		Name:        "resolveComplaint",
		Description: "Close an open complaint with a resolution note.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"complaintId": {"type": "string"},
				"resolution": {"type": "string", "description": "What was done about it"}
			},
			"required": ["complaintId", "resolution"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				ComplaintID string `json:"complaintId"`
				Resolution  string `json:"resolution"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if strings.TrimSpace(in.Resolution) == "" {
				return nil, errors.New("resolution note is required")
			}
			resolved, err := deps.Ledger.ResolveComplaint(in.ComplaintID, in.Resolution)
			if err != nil {
				switch {
				case errors.Is(err, ledger.ErrComplaintNotFound):
					return nil, fmt.Errorf("no complaint with id %q", in.ComplaintID)
				case errors.Is(err, ledger.ErrComplaintResolved):
					return nil, errors.New("this complaint was already resolved")
				default:
					return nil, fmt.Errorf("could not resolve complaint: %v", err)
				}
			}
			// Audit write is best effort; the resolution is already
			// committed in the ledger.
			if deps.Archiver != nil {
				if err := deps.Archiver.SaveComplaint(ctx, resolved); err != nil {
					deps.Logger.Warn("resolveComplaint: archive %s: %v", resolved.ID, err)
				}
			}
			return toComplaintView(resolved), nil
		},
	})

	r.register(Tool{
		Name:        "searchRoutes",
		Description: "Search scheduled routes by origin and destination. The destination matches terminal stops and intermediate stops.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"origin": {"type": "string"},
				"destination": {"type": "string"}
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

	r.register(trackBusTool(deps.Ledger, deps.Now))

	return r
}

func broadcastFailure(err error) error {
	switch {
	case errors.Is(err, broadcast.ErrEmptyMessage):
		return errors.New("broadcast message is empty")
	case errors.Is(err, broadcast.ErrMessageTooLong):
		return fmt.Errorf("broadcast message exceeds %d characters", domain.MaxBroadcastBodyLen)
	case errors.Is(err, broadcast.ErrNoRecipients):
		return errors.New("no reachable contacts to broadcast to")
	default:
		return fmt.Errorf("broadcast failed: %v", err)
	}
}
