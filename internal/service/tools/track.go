package tools

import (
	"fmt"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// segmentDuration is the planning estimate for one leg between adjacent
// stops. There is no GPS feed; position is inferred from the timetable.
const segmentDuration = 45 * time.Minute

// trackView is the model-visible position of one bus.
type trackView struct {
	RouteID       string `json:"routeId"`
	Status        string `json:"status"` // scheduled | en_route | arrived
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	LastStop      string `json:"lastStop,omitempty"`
	NextStop      string `json:"nextStop,omitempty"`
	Detail        string `json:"detail"`
}

// trackRoute derives a deterministic position estimate from the
// departure time and the ordered stop list.
func trackRoute(route *domain.Route, now time.Time) trackView {
	view := trackView{
		RouteID:       route.ID,
		Origin:        route.Origin,
		Destination:   route.Destination,
		DepartureTime: route.DepartureTime.Format(time.RFC3339),
	}

	if !route.Departed(now) {
		view.Status = "scheduled"
		view.NextStop = route.Origin
		view.Detail = fmt.Sprintf("Departs %s at %s.",
			route.Origin, route.DepartureTime.Format(domain.TimeFormat))
		return view
	}

	// Waypoints: origin, each intermediate stop, destination.
	waypoints := append([]string{route.Origin}, route.Stops...)
	waypoints = append(waypoints, route.Destination)
	segments := len(waypoints) - 1

	elapsed := now.Sub(route.DepartureTime)
	passed := int(elapsed / segmentDuration)
	if passed >= segments {
		view.Status = "arrived"
		view.LastStop = route.Destination
		view.Detail = fmt.Sprintf("Arrived at %s.", route.Destination)
		return view
	}

	view.Status = "en_route"
	view.LastStop = waypoints[passed]
	view.NextStop = waypoints[passed+1]
	view.Detail = fmt.Sprintf("Passed %s, heading to %s.", view.LastStop, view.NextStop)
	return view
}
