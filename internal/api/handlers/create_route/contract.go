package create_route

import "github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"

// Ledger registers new routes.
type Ledger interface {
	CreateRoute(route *domain.Route) (*domain.Route, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
