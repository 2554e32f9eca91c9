// Package reports produces operator-facing summaries from the booking
// ledger: revenue reports, occupancy statistics and passenger manifests.
// Manifests carry passenger rows only; ticket security fields never
// leave this package.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// Ledger is the slice of the booking ledger this service needs.
type Ledger interface {
	GetRoute(id string) (*domain.Route, error)
	ListRoutes() []*domain.Route
	TicketsByRoute(routeID string) ([]*domain.Ticket, error)
	ListTickets() []*domain.Ticket
}

// Logger is the logging interface this service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Service builds reports from live ledger state.
type Service struct {
	ledger Ledger
	logger Logger
}

// NewService creates the reporting service.
func NewService(ledgerStore Ledger, logger Logger) *Service {
	return &Service{ledger: ledgerStore, logger: logger}
}

// RouteRevenue is one route's line in a financial report.
type RouteRevenue struct {
	RouteID     string  `json:"routeId"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	TicketsSold int     `json:"ticketsSold"`
	Revenue     float64 `json:"revenue"`
}

// FinancialReport aggregates ticket revenue over a booking period.
type FinancialReport struct {
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
	TotalTickets int            `json:"totalTickets"`
	TotalRevenue float64        `json:"totalRevenue"`
	Routes       []RouteRevenue `json:"routes"`
}

// Financial sums active-ticket revenue booked in [from, to], grouped by
// route. A zero `to` means "up to now".
func (s *Service) Financial(from, to time.Time) (*FinancialReport, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s",
			ErrInvalidPeriod, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	byRoute := make(map[string]*RouteRevenue)
	report := &FinancialReport{From: from, To: to}
	for _, ticket := range s.ledger.ListTickets() {
		if !ticket.IsActive() {
			continue
		}
		if ticket.BookedAt.Before(from) || ticket.BookedAt.After(to) {
			continue
		}
		line, ok := byRoute[ticket.RouteID]
		if !ok {
			line = &RouteRevenue{
				RouteID:     ticket.RouteID,
				Origin:      ticket.Origin,
				Destination: ticket.Destination,
			}
			byRoute[ticket.RouteID] = line
		}
		line.TicketsSold++
		line.Revenue += ticket.Price
		report.TotalTickets++
		report.TotalRevenue += ticket.Price
	}

	report.Routes = make([]RouteRevenue, 0, len(byRoute))
	for _, line := range byRoute {
		report.Routes = append(report.Routes, *line)
	}
	sort.Slice(report.Routes, func(i, j int) bool {
		return report.Routes[i].Revenue > report.Routes[j].Revenue
	})

	s.logger.Info("Financial: %d tickets, %.2f KES between %s and %s",
		report.TotalTickets, report.TotalRevenue,
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	return report, nil
}

// RouteOccupancy is one route's occupancy line.
type RouteOccupancy struct {
	RouteID        string  `json:"routeId"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	Capacity       int     `json:"capacity"`
	SeatsSold      int     `json:"seatsSold"`
	AvailableSeats int     `json:"availableSeats"`
	OccupancyPct   float64 `json:"occupancyPct"`
}

// OccupancyStats reports seat occupancy across all routes, fullest first.
func (s *Service) OccupancyStats() []RouteOccupancy {
	routes := s.ledger.ListRoutes()
	stats := make([]RouteOccupancy, 0, len(routes))
	for _, route := range routes {
		stats = append(stats, RouteOccupancy{
			RouteID:        route.ID,
			Origin:         route.Origin,
			Destination:    route.Destination,
			DepartureTime:  route.DepartureTime.Format(domain.TimeFormat),
			Capacity:       route.Capacity,
			SeatsSold:      route.SeatsSold(),
			AvailableSeats: route.AvailableSeats,
			OccupancyPct:   route.OccupancyRate(),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].OccupancyPct > stats[j].OccupancyPct
	})
	return stats
}

// ManifestEntry is one passenger row. There is intentionally no ticket
// QR content here.
type ManifestEntry struct {
	SeatNumber    int    `json:"seatNumber"`
	PassengerName string `json:"passengerName"`
	TicketID      string `json:"ticketId"`
	Boarded       bool   `json:"boarded"`
}

// Manifest is the passenger list for one departure.
type Manifest struct {
	RouteID       string          `json:"routeId"`
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	DepartureTime time.Time       `json:"departureTime"`
	BusClass      domain.BusClass `json:"busClass"`
	Capacity      int             `json:"capacity"`
	Passengers    []ManifestEntry `json:"passengers"`
}

// RouteManifest projects the active tickets of a route into a passenger
// list ordered by seat number.
func (s *Service) RouteManifest(routeID string) (*Manifest, error) {
	route, err := s.ledger.GetRoute(routeID)
	if err != nil {
		return nil, ErrRouteNotFound
	}
	tickets, err := s.ledger.TicketsByRoute(routeID)
	if err != nil {
		return nil, ErrRouteNotFound
	}

	manifest := &Manifest{
		RouteID:       route.ID,
		Origin:        route.Origin,
		Destination:   route.Destination,
		DepartureTime: route.DepartureTime,
		BusClass:      route.BusClass,
		Capacity:      route.Capacity,
		Passengers:    make([]ManifestEntry, 0, len(tickets)),
	}
	for _, ticket := range tickets {
		if !ticket.IsActive() {
			continue
		}
		manifest.Passengers = append(manifest.Passengers, ManifestEntry{
			SeatNumber:    ticket.SeatNumber,
			PassengerName: ticket.PassengerName,
			TicketID:      ticket.ID,
			Boarded:       ticket.AlreadyUsed(),
		})
	}
	return manifest, nil
}
