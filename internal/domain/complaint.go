package domain

import "time"

// ComplaintSeverity classifies how urgent a complaint is.
type ComplaintSeverity string

const (
	SeverityLow    ComplaintSeverity = "low"
	SeverityMedium ComplaintSeverity = "medium"
	SeverityHigh   ComplaintSeverity = "high"
)

// ComplaintStatus represents the handling state of a complaint.
type ComplaintStatus string

const (
	ComplaintOpen     ComplaintStatus = "open"
	ComplaintResolved ComplaintStatus = "resolved"
)

// Complaint is a customer issue logged through either conversation role
// and resolved by the operator role.
type Complaint struct {
	ID           string
	CustomerName string
	Phone        string // contact for the resolution notification, optional
	Issue        string
	Severity     ComplaintSeverity
	Status       ComplaintStatus
	IncidentDate *time.Time
	RouteID      string // optional route context
	Resolution   string
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}

// IsOpen returns true if the complaint has not been resolved yet.
func (c *Complaint) IsOpen() bool {
	return c.Status == ComplaintOpen
}
