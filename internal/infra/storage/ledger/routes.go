package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// CreateRoute registers a new route. An empty ID is assigned one. The
// available-seat count defaults to the full capacity when left at zero
// alongside a non-zero capacity.
func (s *Store) CreateRoute(route *domain.Route) (*domain.Route, error) {
	if route.Origin == "" || route.Destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", ErrInvalidInput)
	}
	if route.Capacity < domain.MinCapacity || route.Capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d out of range", ErrInvalidInput, route.Capacity)
	}
	if route.AvailableSeats == 0 {
		route.AvailableSeats = route.Capacity
	}
	if route.AvailableSeats < 0 || route.AvailableSeats > route.Capacity {
		return nil, fmt.Errorf("%w: available seats %d out of range", ErrInvalidInput, route.AvailableSeats)
	}
	if len(route.Stops) > domain.MaxStopsPerRoute {
		return nil, fmt.Errorf("%w: too many stops", ErrInvalidInput)
	}
	if !domain.ValidBusClass(route.BusClass) {
		return nil, fmt.Errorf("%w: unknown bus class %q", ErrInvalidInput, route.BusClass)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if route.ID == "" {
		route.ID = newID("RT")
	}
	now := s.now()
	route.CreatedAt = now
	route.UpdatedAt = now

	stored := *route
	s.routes[route.ID] = &stored

	out := stored
	return &out, nil
}

// GetRoute returns a copy of the route with the given id.
func (s *Store) GetRoute(id string) (*domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	route, ok := s.routes[id]
	if !ok {
		return nil, ErrRouteNotFound
	}
	out := *route
	return &out, nil
}

// ListRoutes returns copies of all routes, ordered by departure time.
func (s *Store) ListRoutes() []*domain.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Route, 0, len(s.routes))
	for _, r := range s.routes {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})
	return out
}

// SearchRoutes returns routes departing from origin that either terminate
// at destination or pass through it as an intermediate stop. Empty origin
// or destination matches everything on that side.
func (s *Store) SearchRoutes(origin, destination string) []*domain.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Route
	for _, r := range s.routes {
		if origin != "" && !strings.EqualFold(r.Origin, origin) {
			continue
		}
		if destination != "" && !r.ServesDestination(destination) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})
	return out
}

// RouteUpdate carries the mutable route fields for an admin edit.
// Nil fields are left untouched.
type RouteUpdate struct {
	Price          *float64
	AvailableSeats *int
	DepartureTime  *string // RFC 3339
}

// UpdateRoute applies an admin price/availability edit. The seat invariant
// 0 <= available <= capacity is enforced here, not by callers.
func (s *Store) UpdateRoute(id string, upd RouteUpdate) (*domain.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route, ok := s.routes[id]
	if !ok {
		return nil, ErrRouteNotFound
	}

	if upd.Price != nil {
		if *upd.Price < 0 {
			return nil, fmt.Errorf("%w: negative price", ErrInvalidInput)
		}
		route.Price = *upd.Price
	}
	if upd.AvailableSeats != nil {
		if *upd.AvailableSeats < 0 || *upd.AvailableSeats > route.Capacity {
			return nil, fmt.Errorf("%w: available seats %d out of range [0, %d]",
				ErrInvalidInput, *upd.AvailableSeats, route.Capacity)
		}
		route.AvailableSeats = *upd.AvailableSeats
	}
	if upd.DepartureTime != nil {
		t, err := parseRFC3339(*upd.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("%w: departure time: %v", ErrInvalidInput, err)
		}
		route.DepartureTime = t
	}
	route.UpdatedAt = s.now()

	out := *route
	return &out, nil
}
