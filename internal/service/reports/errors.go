package reports

import "errors"

var (
	// ErrRouteNotFound is returned when the route id is unknown
	ErrRouteNotFound = errors.New("reports: route not found")

	// ErrInvalidPeriod is returned when the report period is malformed
	ErrInvalidPeriod = errors.New("reports: invalid period")

	// ErrRender is returned when PDF rendering fails
	ErrRender = errors.New("reports: render failed")
)
