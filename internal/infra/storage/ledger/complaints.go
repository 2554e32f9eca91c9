package ledger

import (
	"fmt"
	"sort"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// CreateComplaint logs a new customer complaint in open state.
func (s *Store) CreateComplaint(c *domain.Complaint) (*domain.Complaint, error) {
	if c.CustomerName == "" || c.Issue == "" {
		return nil, fmt.Errorf("%w: customer name and issue are required", ErrInvalidInput)
	}
	if len(c.Issue) > domain.MaxIssueLength {
		return nil, fmt.Errorf("%w: issue text too long", ErrInvalidInput)
	}
	if !domain.ValidSeverity(c.Severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrInvalidInput, c.Severity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = newID("CMP")
	}
	c.Status = domain.ComplaintOpen
	c.CreatedAt = s.now()

	stored := *c
	s.complaints[c.ID] = &stored

	out := stored
	return &out, nil
}

// GetComplaint returns a copy of the complaint with the given id.
func (s *Store) GetComplaint(id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.complaints[id]
	if !ok {
		return nil, ErrComplaintNotFound
	}
	out := *c
	return &out, nil
}

// ListComplaints returns copies of complaints, optionally filtered by
// status, newest first.
func (s *Store) ListComplaints(status *domain.ComplaintStatus) []*domain.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Complaint
	for _, c := range s.complaints {
		if status != nil && c.Status != *status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ResolveComplaint transitions an open complaint to resolved with the
// given resolution note. An unknown id mutates nothing.
func (s *Store) ResolveComplaint(id, resolution string) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok {
		return nil, ErrComplaintNotFound
	}
	if c.Status == domain.ComplaintResolved {
		return nil, ErrComplaintResolved
	}

	now := s.now()
	c.Status = domain.ComplaintResolved
	c.Resolution = resolution
	c.ResolvedAt = &now

	out := *c
	return &out, nil
}
