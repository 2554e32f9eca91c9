package domain

import "time"

// Contact is a denormalized customer relationship record owned by the
// external CRM. Read-only from this service's perspective.
type Contact struct {
	Name           string
	Phone          string
	LastTravelDate *time.Time
	TripCount      int
}
