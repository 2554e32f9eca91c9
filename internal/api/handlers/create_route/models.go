package create_route

import (
	"fmt"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// Request describes a new scheduled departure.
type Request struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureTime string   `json:"departureTime"` // RFC 3339
	Price         float64  `json:"price"`
	Capacity      int      `json:"capacity"`
	BusClass      string   `json:"busClass"`
	Stops         []string `json:"stops,omitempty"`
}

// ToRoute converts the HTTP request into a domain route.
func (r *Request) ToRoute() (*domain.Route, error) {
	departure, err := time.Parse(time.RFC3339, r.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("parse departure time: %w", err)
	}
	return &domain.Route{
		Origin:        r.Origin,
		Destination:   r.Destination,
		DepartureTime: departure,
		Price:         r.Price,
		Capacity:      r.Capacity,
		BusClass:      domain.BusClass(r.BusClass),
		Stops:         r.Stops,
	}, nil
}

// Response mirrors the stored route.
type Response struct {
	RouteID        string   `json:"routeId"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	DepartureTime  string   `json:"departureTime"`
	Price          float64  `json:"price"`
	Capacity       int      `json:"capacity"`
	AvailableSeats int      `json:"availableSeats"`
	BusClass       string   `json:"busClass"`
	Stops          []string `json:"stops,omitempty"`
}

// FromRoute converts a domain route into the HTTP response.
func FromRoute(route *domain.Route) Response {
	return Response{
		RouteID:        route.ID,
		Origin:         route.Origin,
		Destination:    route.Destination,
		DepartureTime:  route.DepartureTime.Format(time.RFC3339),
		Price:          route.Price,
		Capacity:       route.Capacity,
		AvailableSeats: route.AvailableSeats,
		BusClass:       string(route.BusClass),
		Stops:          route.Stops,
	}
}
