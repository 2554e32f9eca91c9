package update_route

import (
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
)

// Ledger applies admin route edits.
type Ledger interface {
	UpdateRoute(id string, upd ledger.RouteUpdate) (*domain.Route, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
