package domain

import (
	"strings"
	"time"
)

// BusClass represents the coach class offered on a route.
type BusClass string

const (
	ClassEconomy  BusClass = "economy"
	ClassBusiness BusClass = "business"
	ClassVIP      BusClass = "vip"
)

// Route represents one direction of a scheduled coach journey.
// Opposite directions of the same road segment are independent records.
type Route struct {
	ID             string
	Origin         string
	Destination    string
	DepartureTime  time.Time
	Price          float64
	Capacity       int
	AvailableSeats int
	BusClass       BusClass
	Stops          []string // ordered intermediate stop names

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSeats returns true if at least one seat can still be sold.
func (r *Route) HasSeats() bool {
	return r.AvailableSeats > 0
}

// SeatsSold returns the number of seats already booked.
func (r *Route) SeatsSold() int {
	return r.Capacity - r.AvailableSeats
}

// OccupancyRate returns the occupancy as a percentage (0-100).
func (r *Route) OccupancyRate() float64 {
	if r.Capacity == 0 {
		return 0
	}
	return float64(r.SeatsSold()) / float64(r.Capacity) * 100
}

// ServesDestination reports whether the route terminates at, or passes
// through, the given place name. Matching is case-insensitive.
func (r *Route) ServesDestination(place string) bool {
	if strings.EqualFold(r.Destination, place) {
		return true
	}
	for _, stop := range r.Stops {
		if strings.EqualFold(stop, place) {
			return true
		}
	}
	return false
}

// Departed reports whether the route's departure time has passed.
func (r *Route) Departed(now time.Time) bool {
	return now.After(r.DepartureTime)
}
