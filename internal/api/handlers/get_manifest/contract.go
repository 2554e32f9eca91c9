package get_manifest

import "github.com/kamaubrian/TwendeBus-AssistantService/internal/service/reports"

// Reporter builds manifests in both renderings.
type Reporter interface {
	RouteManifest(routeID string) (*reports.Manifest, error)
	ManifestPDF(routeID string) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
