package update_route

import (
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
)

// Request carries the mutable route fields; omitted fields stay as-is.
type Request struct {
	Price          *float64 `json:"price,omitempty"`
	AvailableSeats *int     `json:"availableSeats,omitempty"`
	DepartureTime  *string  `json:"departureTime,omitempty"` // RFC 3339
}

// ToUpdate converts the HTTP request into a ledger edit.
func (r *Request) ToUpdate() ledger.RouteUpdate {
	return ledger.RouteUpdate{
		Price:          r.Price,
		AvailableSeats: r.AvailableSeats,
		DepartureTime:  r.DepartureTime,
	}
}

// Response mirrors the updated route.
type Response struct {
	RouteID        string  `json:"routeId"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	Price          float64 `json:"price"`
	Capacity       int     `json:"capacity"`
	AvailableSeats int     `json:"availableSeats"`
	BusClass       string  `json:"busClass"`
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
	}
}
