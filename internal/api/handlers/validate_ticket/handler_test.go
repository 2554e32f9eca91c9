package validate_ticket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/boarding"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	result *boarding.Result
	err    error
}

func (s *stubService) ValidateTicket(string) (*boarding.Result, error) {
	return s.result, s.err
}

func scan(t *testing.T, svc BoardingService, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/boarding/scan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleBoardingSuccess(t *testing.T) {
	rec := scan(t, &stubService{result: &boarding.Result{
		TicketID:      "TKT-1",
		PassengerName: "Achieng Odhiambo",
		SeatNumber:    7,
		Message:       "Welcome aboard",
	}}, `{"ticketId":"TKT-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"seatNumber":7`)
}

func TestHandleRepeatScanConflict(t *testing.T) {
	rec := scan(t, &stubService{err: boarding.ErrAlreadyUsed}, `{"ticketId":"TKT-1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already used")
}

func TestHandleUnknownTicket(t *testing.T) {
	rec := scan(t, &stubService{err: boarding.ErrTicketNotFound}, `{"ticketId":"TKT-404"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleEmptyTicketID(t *testing.T) {
	rec := scan(t, &stubService{}, `{"ticketId":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
