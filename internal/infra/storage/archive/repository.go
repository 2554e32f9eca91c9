// Package archive writes a durable audit trail of issued tickets, payment
// records and resolved complaints to Postgres. The in-memory ledger stays
// authoritative; archive writes run behind it and a write failure must
// never fail the business operation that triggered it.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/pkg/psqlbuilder"
)

// Repository persists audit rows.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an archive repository on top of an open database.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SaveTicket records an issued ticket.
func (r *Repository) SaveTicket(ctx context.Context, ticket *domain.Ticket) error {
	query, args, err := psqlbuilder.Insert("archived_tickets").
		Columns(
			"id",
			"passenger_name",
			"route_id",
			"origin",
			"destination",
			"departure_time",
			"price",
			"bus_class",
			"seat_number",
			"status",
			"boarding_status",
			"payment_ref",
			"booked_at",
			"user_id",
		).
		Values(
			ticket.ID,
			ticket.PassengerName,
			ticket.RouteID,
			ticket.Origin,
			ticket.Destination,
			ticket.DepartureTime,
			ticket.Price,
			ticket.BusClass,
			ticket.SeatNumber,
			ticket.Status,
			ticket.BoardingStatus,
			ticket.PaymentRef,
			ticket.BookedAt,
			ticket.UserID,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveTicket - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveTicket - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// SavePayment records the latest observed state of a payment record.
func (r *Repository) SavePayment(ctx context.Context, payment *domain.PaymentRecord) error {
	query, args, err := psqlbuilder.Insert("archived_payments").
		Columns(
			"reference",
			"phone",
			"amount",
			"status",
			"consumed",
			"created_at",
			"updated_at",
		).
		Values(
			payment.Reference,
			payment.Phone,
			payment.Amount,
			payment.Status,
			payment.Consumed,
			payment.CreatedAt,
			payment.UpdatedAt,
		).
		Suffix("ON CONFLICT (reference) DO UPDATE SET status = EXCLUDED.status, consumed = EXCLUDED.consumed, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SavePayment - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SavePayment - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// SaveComplaint records a complaint in its current state.
func (r *Repository) SaveComplaint(ctx context.Context, complaint *domain.Complaint) error {
	query, args, err := psqlbuilder.Insert("archived_complaints").
		Columns(
			"id",
			"customer_name",
			"phone",
			"issue",
			"severity",
			"status",
			"resolution",
			"route_id",
			"created_at",
			"resolved_at",
		).
		Values(
			complaint.ID,
			complaint.CustomerName,
			complaint.Phone,
			complaint.Issue,
			complaint.Severity,
			complaint.Status,
			complaint.Resolution,
			complaint.RouteID,
			complaint.CreatedAt,
			complaint.ResolvedAt,
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, resolution = EXCLUDED.resolution, resolved_at = EXCLUDED.resolved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveComplaint - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveComplaint - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// TicketsIssuedSince counts archived tickets booked at or after the given
// time. Used by operational tooling to sanity-check the archive against
// the ledger.
func (r *Repository) TicketsIssuedSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("archived_tickets").
		Where(squirrel.GtOrEq{"booked_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: TicketsIssuedSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: TicketsIssuedSince - execute select: %v", ErrExecQuery, err)
	}
	return count, nil
}
