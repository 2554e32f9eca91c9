package archive

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestSaveTicket(t *testing.T) {
	repo, mock := newMockRepo(t)

	ticket := &domain.Ticket{
		ID:             "TKT-1",
		PassengerName:  "Achieng Odhiambo",
		RouteID:        "RT-1",
		Origin:         "Nairobi",
		Destination:    "Kisumu",
		DepartureTime:  time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Price:          1500,
		BusClass:       domain.ClassEconomy,
		SeatNumber:     1,
		Status:         domain.TicketBooked,
		BoardingStatus: domain.BoardingPending,
		PaymentRef:     "CRQ-1",
		BookedAt:       time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO archived_tickets").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveTicket(context.Background(), ticket))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePaymentUpsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	payment := &domain.PaymentRecord{
		Reference: "CRQ-1",
		Phone:     "0712345678",
		Amount:    1500,
		Status:    domain.PaymentCompleted,
		Consumed:  true,
	}

	mock.ExpectExec("INSERT INTO archived_payments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SavePayment(context.Background(), payment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveComplaintExecError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO archived_complaints").
		WillReturnError(assert.AnError)

	err := repo.SaveComplaint(context.Background(), &domain.Complaint{
		ID:           "CMP-1",
		CustomerName: "Wanjiru Kamau",
		Issue:        "Late departure",
		Severity:     domain.SeverityLow,
		Status:       domain.ComplaintOpen,
	})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestTicketsIssuedSince(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM archived_tickets").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	got, err := repo.TicketsIssuedSince(context.Background(), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
