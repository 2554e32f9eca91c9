package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// seedFile is the YAML shape of the route inventory.
type seedFile struct {
	Routes []seedRoute `yaml:"routes"`
}

type seedRoute struct {
	Origin        string   `yaml:"origin"`
	Destination   string   `yaml:"destination"`
	DepartureTime string   `yaml:"departure_time"` // RFC 3339
	Price         float64  `yaml:"price"`
	Capacity      int      `yaml:"capacity"`
	BusClass      string   `yaml:"bus_class"`
	Stops         []string `yaml:"stops"`
}

// LoadSeedRoutes reads the initial route inventory. A missing path is
// not an error; the service just starts with an empty timetable.
func LoadSeedRoutes(path string) ([]*domain.Route, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}

	routes := make([]*domain.Route, 0, len(file.Routes))
	for i, r := range file.Routes {
		departure, err := time.Parse(time.RFC3339, r.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("seed %s: route %d: departure time: %w", path, i, err)
		}
		routes = append(routes, &domain.Route{
			Origin:        r.Origin,
			Destination:   r.Destination,
			DepartureTime: departure,
			Price:         r.Price,
			Capacity:      r.Capacity,
			BusClass:      domain.BusClass(r.BusClass),
			Stops:         r.Stops,
		})
	}
	return routes, nil
}
